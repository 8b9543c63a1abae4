package batch

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunesj/picture-rotation-fixer/internal/detect"
	"github.com/yunesj/picture-rotation-fixer/internal/testutil"
	"github.com/yunesj/picture-rotation-fixer/internal/utils"
)

// stubDetector matches whenever fn reports true for the probed image.
type stubDetector struct {
	method detect.Method
	fn     func(image.Image) bool
}

func (s *stubDetector) Method() detect.Method { return s.method }
func (s *stubDetector) Available() bool       { return true }
func (s *stubDetector) Close() error          { return nil }

func (s *stubDetector) Detect(img image.Image) (detect.Result, error) {
	if s.fn != nil && s.fn(img) {
		return detect.Result{Found: true, Confidence: 0.8}, nil
	}
	return detect.Result{}, nil
}

// topLeftBlack treats "black pixel in the top-left corner" as the upright
// orientation of a marked test image.
func topLeftBlack(img image.Image) bool {
	b := img.Bounds()
	r, g, bl, _ := img.At(b.Min.X, b.Min.Y).RGBA()
	return r == 0 && g == 0 && bl == 0
}

func markedFactory() []detect.Detector {
	return []detect.Detector{&stubDetector{method: detect.MethodFace, fn: topLeftBlack}}
}

func blindFactory() []detect.Detector {
	return []detect.Detector{&stubDetector{method: detect.MethodFace}}
}

func TestProcessBatch_RotatesAndIsIdempotent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "sideways.png")
	// Mark in the top-right corner: exactly one right-angle rotation moves it
	// to the top-left where the stub detector looks.
	testutil.WritePNG(t, testutil.NewMarkedImage(16, 16, 15, 0), path)

	config := &Config{
		RootDir:         root,
		Workers:         2,
		DetectorFactory: markedFactory,
		Quiet:           true,
	}
	summary, err := ProcessBatch(config)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Rotated)
	assert.Zero(t, summary.Failed)

	img, _, err := utils.LoadImage(path)
	require.NoError(t, err)
	assert.True(t, topLeftBlack(img), "rewritten file should be upright")

	// A second pass over already-fixed files must not rewrite anything.
	summary, err = ProcessBatch(config)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AlreadyUpright)
	assert.Zero(t, summary.Rotated)
}

func TestProcessBatch_CorruptFileCountedNotFatal(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		testutil.WritePNG(t, testutil.NewMarkedImage(16, 16, 0, 0), filepath.Join(root, name))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.jpg"), []byte("not an image"), 0o644))

	summary, err := ProcessBatch(&Config{
		RootDir:         root,
		Workers:         3,
		DetectorFactory: markedFactory,
		Quiet:           true,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.AlreadyUpright)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, summary.Total,
		summary.Rotated+summary.AlreadyUpright+summary.NoDetection+summary.Failed)
}

func TestProcessBatch_DryRunLeavesFilesUntouched(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "sideways.png")
	testutil.WritePNG(t, testutil.NewMarkedImage(16, 16, 15, 0), path)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	summary, err := ProcessBatch(&Config{
		RootDir:         root,
		Workers:         1,
		DetectorFactory: markedFactory,
		DryRun:          true,
		Quiet:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Rotated, "dry run still reports the decision")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProcessBatch_NoDetectionLeftAsIs(t *testing.T) {
	root := t.TempDir()
	testutil.WritePNG(t, testutil.NewGradientImage(16, 16), filepath.Join(root, "a.png"))
	testutil.WritePNG(t, testutil.NewGradientImage(16, 16), filepath.Join(root, "b.png"))

	summary, err := ProcessBatch(&Config{
		RootDir:         root,
		Workers:         1,
		DetectorFactory: blindFactory,
		Quiet:           true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.NoDetection)
	assert.Equal(t, 2, summary.LeftAsIs())
	assert.Zero(t, summary.Failed)
}

func TestProcessBatch_EmptyDir(t *testing.T) {
	summary, err := ProcessBatch(&Config{
		RootDir:         t.TempDir(),
		DetectorFactory: blindFactory,
		Quiet:           true,
	})
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
}

func TestProcessBatch_WorkersCappedAtFileCount(t *testing.T) {
	root := t.TempDir()
	testutil.WritePNG(t, testutil.NewMarkedImage(16, 16, 0, 0), filepath.Join(root, "only.png"))

	summary, err := ProcessBatch(&Config{
		RootDir:         root,
		Workers:         8,
		DetectorFactory: markedFactory,
		Quiet:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.WorkerCount)
}

func TestProcessBatch_MissingRoot(t *testing.T) {
	_, err := ProcessBatch(&Config{
		RootDir: filepath.Join(t.TempDir(), "nope"),
		Quiet:   true,
	})
	require.Error(t, err)
}
