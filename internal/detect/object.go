package detect

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	onnxrt "github.com/yalue/onnxruntime_go"

	"github.com/yunesj/picture-rotation-fixer/internal/models"
	"github.com/yunesj/picture-rotation-fixer/internal/onnx"
	"github.com/yunesj/picture-rotation-fixer/internal/utils"
)

// ObjectConfig controls the ONNX object detector.
type ObjectConfig struct {
	ModelPath  string
	Confidence float64 // minimum class score for a box to count
	NumThreads int     // 0 = runtime default
}

// DefaultObjectConfig provides sensible defaults.
func DefaultObjectConfig() ObjectConfig {
	return ObjectConfig{
		ModelPath:  models.GetObjectModelPath(""),
		Confidence: 0.5,
		NumThreads: 0,
	}
}

// ObjectDetector runs a pretrained detection model and reports whether any
// bounding box clears the confidence threshold. Box geometry is discarded;
// only presence matters for the orientation probe.
type ObjectDetector struct {
	cfg     ObjectConfig
	session *onnxrt.DynamicAdvancedSession
	// expected input dims (H, W). Defaults to 640x640 for dynamic models.
	inH, inW int
}

// NewObjectDetector attempts to create an ONNX-backed detector. A missing
// model or runtime degrades the detector to unavailable (always no match);
// the condition is logged once here, never per file.
func NewObjectDetector(cfg ObjectConfig) *ObjectDetector {
	d := &ObjectDetector{cfg: cfg}

	if err := d.initSession(); err != nil {
		slog.Warn("object detection model unavailable, object fallback disabled",
			"path", cfg.ModelPath, "error", err)
		d.session = nil
	}
	return d
}

func (d *ObjectDetector) initSession() error {
	if d.cfg.ModelPath == "" {
		return errors.New("empty model path")
	}
	if _, err := os.Stat(d.cfg.ModelPath); err != nil {
		return err
	}

	if err := onnx.EnsureRuntime(); err != nil {
		return err
	}

	inputs, outputs, err := onnxrt.GetInputOutputInfo(d.cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("io info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) < 1 {
		return fmt.Errorf("unexpected io (in:%d out:%d)", len(inputs), len(outputs))
	}

	in := inputs[0]
	out := outputs[0]
	if len(in.Dimensions) != 4 {
		return fmt.Errorf("expected 4D input, got %dD", len(in.Dimensions))
	}

	opts, err := onnxrt.NewSessionOptions()
	if err != nil {
		return fmt.Errorf("session opts: %w", err)
	}
	defer func() {
		if err := opts.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying session options: %v\n", err)
		}
	}()

	if d.cfg.NumThreads > 0 {
		_ = opts.SetIntraOpNumThreads(d.cfg.NumThreads)
	}

	sess, err := onnxrt.NewDynamicAdvancedSession(d.cfg.ModelPath,
		[]string{in.Name}, []string{out.Name}, opts)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	d.session = sess
	d.inH, d.inW = 640, 640
	if h := in.Dimensions[2]; h > 0 {
		d.inH = int(h)
	}
	if w := in.Dimensions[3]; w > 0 {
		d.inW = int(w)
	}
	return nil
}

// Method implements Detector.
func (d *ObjectDetector) Method() Method { return MethodObject }

// Available implements Detector.
func (d *ObjectDetector) Available() bool { return d.session != nil }

// Close implements Detector.
func (d *ObjectDetector) Close() error {
	if d.session != nil {
		if err := d.session.Destroy(); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
		d.session = nil
	}
	return nil
}

// Detect reports whether the model finds any object above the confidence
// threshold in the image as presented.
func (d *ObjectDetector) Detect(img image.Image) (Result, error) {
	if img == nil {
		return Result{}, errors.New("nil image")
	}
	if d.session == nil {
		return Result{}, nil
	}

	input, cleanupInput, err := d.prepareInputTensor(img)
	if err != nil {
		return Result{}, err
	}
	defer cleanupInput()

	outputs := []onnxrt.Value{nil}
	if err := d.session.Run([]onnxrt.Value{input}, outputs); err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				if err := o.Destroy(); err != nil {
					fmt.Fprintf(os.Stderr, "Error destroying output tensor: %v\n", err)
				}
			}
		}
	}()

	t, ok := outputs[0].(*onnxrt.Tensor[float32])
	if !ok {
		return Result{}, fmt.Errorf("unexpected output type %T", outputs[0])
	}

	return DecodeDetections(t.GetData(), t.GetShape(), d.cfg.Confidence)
}

func (d *ObjectDetector) prepareInputTensor(img image.Image) (*onnxrt.Tensor[float32], func(), error) {
	// Aspect distortion from a plain resize is acceptable here: the probe
	// only asks whether anything recognizable is present.
	resized := imaging.Resize(img, d.inW, d.inH, imaging.Lanczos)
	data, w, h, err := utils.NormalizeImage(resized)
	if err != nil {
		return nil, nil, err
	}

	tensor, err := onnx.NewImageTensor(data, 3, h, w)
	if err != nil {
		return nil, nil, err
	}
	if err := onnx.VerifyImageTensor(tensor); err != nil {
		return nil, nil, err
	}

	input, err := onnxrt.NewTensor(onnxrt.NewShape(tensor.Shape...), tensor.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("tensor: %w", err)
	}

	cleanup := func() {
		if err := input.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying input tensor: %v\n", err)
		}
	}
	return input, cleanup, nil
}
