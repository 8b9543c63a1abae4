package utils

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunesj/picture-rotation-fixer/internal/testutil"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"photo.JPG", true},
		{"photo.Png", true},
		{"photo.JPEG", true},
		{"photo.gif", false},
		{"photo.bmp", false},
		{"photo.tiff", false},
		{"photo", false},
		{"", false},
		{"dir/nested/scan.jpeg", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupportedImage(tt.path))
		})
	}
}

func TestLoadImage_PNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")
	testutil.WritePNG(t, testutil.NewGradientImage(40, 30), path)

	img, meta, err := LoadImage(path)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, 40, meta.Width)
	assert.Equal(t, 30, meta.Height)
	assert.Equal(t, path, meta.Path)
	assert.Positive(t, meta.SizeBytes)
}

func TestLoadImage_JPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.jpg")
	testutil.WriteJPEG(t, testutil.NewGradientImage(64, 48), path)

	_, meta, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", meta.Format)
}

func TestLoadImage_EmptyPath(t *testing.T) {
	_, _, err := LoadImage("")
	require.Error(t, err)

	var procErr *ImageProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "load", procErr.Operation)
}

func TestLoadImage_UnsupportedExtension(t *testing.T) {
	_, _, err := LoadImage("photo.gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestLoadImage_MissingFile(t *testing.T) {
	_, _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestLoadImage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	_, _, err := LoadImage(path)
	require.Error(t, err)

	var procErr *ImageProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "decode", procErr.Operation)
}

func TestSaveImage_PreservesFormat(t *testing.T) {
	dir := t.TempDir()

	for _, tt := range []struct {
		name   string
		format string
	}{
		{"photo.png", "png"},
		{"photo.jpg", "jpeg"},
	} {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			img := testutil.NewGradientImage(32, 24)
			require.NoError(t, SaveImage(img, path, tt.format, 0o644))

			_, meta, err := LoadImage(path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, meta.Format)
			assert.Equal(t, 32, meta.Width)
			assert.Equal(t, 24, meta.Height)
		})
	}
}

func TestSaveImage_OverwritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	testutil.WritePNG(t, testutil.NewSolidImage(10, 20, color.White), path)

	require.NoError(t, SaveImage(testutil.NewGradientImage(20, 10), path, "png", 0o644))

	_, meta, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 20, meta.Width)
	assert.Equal(t, 10, meta.Height)

	// The temp-and-rename write should leave no stray files behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveImage_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")

	err := SaveImage(testutil.NewGradientImage(8, 8), path, "webp", 0o644)
	require.Error(t, err)

	var procErr *ImageProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "encode", procErr.Operation)

	// Nothing should have been written.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveImage_NilImage(t *testing.T) {
	err := SaveImage(nil, filepath.Join(t.TempDir(), "x.png"), "png", 0o644)
	require.Error(t, err)
}
