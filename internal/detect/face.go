package detect

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/yunesj/picture-rotation-fixer/internal/models"
)

// FaceConfig controls the pixel-intensity cascade face detector.
type FaceConfig struct {
	CascadePath string
	MinSize     int
	MaxSize     int // 0 = derived from the image's shorter side
	ShiftFactor float64
	ScaleFactor float64
	IoU         float64 // cluster overlap threshold
	Quality     float64 // minimum detection score for a clustered face
}

// DefaultFaceConfig provides sensible defaults for scanned portrait photos.
func DefaultFaceConfig() FaceConfig {
	return FaceConfig{
		CascadePath: models.GetFaceCascadePath(""),
		MinSize:     20,
		MaxSize:     0,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		IoU:         0.2,
		Quality:     5.0,
	}
}

// FaceDetector runs a binary frontal-face cascade over grayscale pixels.
type FaceDetector struct {
	cfg        FaceConfig
	classifier *pigo.Pigo
}

// NewFaceDetector loads and unpacks the cascade file. A missing or corrupt
// cascade degrades the detector to unavailable (always no match) rather than
// failing; the condition is logged once here.
func NewFaceDetector(cfg FaceConfig) *FaceDetector {
	d := &FaceDetector{cfg: cfg}

	classifier, err := loadCascade(cfg.CascadePath)
	if err != nil {
		slog.Warn("face cascade unavailable, face detection disabled",
			"path", cfg.CascadePath, "error", err)
		return d
	}
	d.classifier = classifier
	return d
}

func loadCascade(path string) (*pigo.Pigo, error) {
	if path == "" {
		return nil, errors.New("empty cascade path")
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: cascade path comes from config
	if err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, fmt.Errorf("cascade file too short: %d bytes", len(data))
	}
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade: %w", err)
	}
	return classifier, nil
}

// Method implements Detector.
func (d *FaceDetector) Method() Method { return MethodFace }

// Available implements Detector.
func (d *FaceDetector) Available() bool { return d.classifier != nil }

// Close implements Detector. The cascade holds no native resources.
func (d *FaceDetector) Close() error { return nil }

// Detect reports whether at least one face scores above the quality
// threshold in the image as presented.
func (d *FaceDetector) Detect(img image.Image) (Result, error) {
	if img == nil {
		return Result{}, errors.New("nil image")
	}
	if d.classifier == nil {
		return Result{}, nil
	}

	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	if cols < d.cfg.MinSize || rows < d.cfg.MinSize {
		return Result{}, nil
	}

	maxSize := d.cfg.MaxSize
	if maxSize <= 0 {
		maxSize = min(cols, rows)
	}

	pixels := pigo.RgbToGrayscale(img)
	params := pigo.CascadeParams{
		MinSize:     d.cfg.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.cfg.ShiftFactor,
		ScaleFactor: d.cfg.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.cfg.IoU)

	var best float64
	found := false
	for _, det := range dets {
		q := float64(det.Q)
		if q >= d.cfg.Quality {
			found = true
			if q > best {
				best = q
			}
		}
	}

	return Result{Found: found, Confidence: best}, nil
}
