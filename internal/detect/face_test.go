package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunesj/picture-rotation-fixer/internal/testutil"
)

func TestDefaultFaceConfig(t *testing.T) {
	cfg := DefaultFaceConfig()
	assert.Equal(t, 20, cfg.MinSize)
	assert.InDelta(t, 0.1, cfg.ShiftFactor, 1e-9)
	assert.InDelta(t, 1.1, cfg.ScaleFactor, 1e-9)
	assert.InDelta(t, 5.0, cfg.Quality, 1e-9)
	assert.NotEmpty(t, cfg.CascadePath)
}

func TestFaceDetector_MissingCascade(t *testing.T) {
	d := NewFaceDetector(FaceConfig{CascadePath: filepath.Join(t.TempDir(), "facefinder")})
	assert.False(t, d.Available())
	assert.Equal(t, MethodFace, d.Method())

	// An unavailable detector degrades to always-miss, never an error.
	res, err := d.Detect(testutil.NewGradientImage(64, 64))
	require.NoError(t, err)
	assert.False(t, res.Found)
	require.NoError(t, d.Close())
}

func TestFaceDetector_EmptyPath(t *testing.T) {
	d := NewFaceDetector(FaceConfig{})
	assert.False(t, d.Available())
}

func TestFaceDetector_CorruptCascade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facefinder")
	require.NoError(t, os.WriteFile(path, []byte{}, 0o600))

	d := NewFaceDetector(FaceConfig{CascadePath: path})
	assert.False(t, d.Available())
}

func TestFaceDetector_NilImage(t *testing.T) {
	d := NewFaceDetector(FaceConfig{CascadePath: filepath.Join(t.TempDir(), "facefinder")})
	_, err := d.Detect(nil)
	require.Error(t, err)
}
