package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewSolidImage creates a uniformly colored RGBA image.
func NewSolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// NewGradientImage creates an image whose luminance increases left to right.
// Useful when a test needs an asymmetric picture whose rotations differ.
func NewGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / max(width-1, 1))
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// NewMarkedImage creates a white image with a single black pixel at (x, y),
// giving each of the four rotations a distinct pixel layout.
func NewMarkedImage(width, height, x, y int) *image.RGBA {
	img := NewSolidImage(width, height, color.White)
	img.Set(x, y, color.Black)
	return img
}

// WritePNG encodes img as PNG at path.
func WritePNG(t *testing.T, img image.Image, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.NoError(t, png.Encode(f, img))
}

// WriteJPEG encodes img as JPEG at path.
func WriteJPEG(t *testing.T, img image.Image, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 95}))
}
