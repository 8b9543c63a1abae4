package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunesj/picture-rotation-fixer/internal/testutil"
)

func TestRotateAngle_Dimensions(t *testing.T) {
	img := testutil.NewGradientImage(40, 20)

	tests := []struct {
		angle      int
		wantW      int
		wantH      int
	}{
		{0, 40, 20},
		{90, 20, 40},
		{180, 40, 20},
		{270, 20, 40},
	}

	for _, tt := range tests {
		rotated, err := RotateAngle(img, tt.angle)
		require.NoError(t, err)
		b := rotated.Bounds()
		assert.Equal(t, tt.wantW, b.Dx(), "angle %d width", tt.angle)
		assert.Equal(t, tt.wantH, b.Dy(), "angle %d height", tt.angle)
	}
}

func TestRotateAngle_ZeroIsIdentity(t *testing.T) {
	img := testutil.NewGradientImage(16, 8)
	rotated, err := RotateAngle(img, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Image(img), rotated)
}

func TestRotateAngle_InverseRotationsCancel(t *testing.T) {
	img := testutil.NewMarkedImage(9, 5, 2, 1)

	// Rotating by an angle and then by its complement restores the mark.
	for _, angles := range [][2]int{{90, 270}, {270, 90}, {180, 180}} {
		once, err := RotateAngle(img, angles[0])
		require.NoError(t, err)
		back, err := RotateAngle(once, angles[1])
		require.NoError(t, err)

		r, g, b, _ := back.At(2, 1).RGBA()
		assert.Zero(t, r, "angles %v", angles)
		assert.Zero(t, g)
		assert.Zero(t, b)
	}
}

func TestRotateAngle_InvalidAngle(t *testing.T) {
	_, err := RotateAngle(testutil.NewGradientImage(4, 4), 45)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported rotation angle")
}

func TestNormalizeImage(t *testing.T) {
	img := testutil.NewGradientImage(8, 6)

	data, w, h, err := NormalizeImage(img)
	require.NoError(t, err)
	assert.Equal(t, 8, w)
	assert.Equal(t, 6, h)
	require.Len(t, data, 3*8*6)

	for i, v := range data {
		assert.GreaterOrEqual(t, v, float32(0), "index %d", i)
		assert.LessOrEqual(t, v, float32(1), "index %d", i)
	}
}

func TestNormalizeImage_Nil(t *testing.T) {
	_, _, _, err := NormalizeImage(nil)
	require.Error(t, err)
}

func TestImageProcessingError_Unwrap(t *testing.T) {
	inner := assert.AnError
	err := &ImageProcessingError{Operation: "load", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "load")
}
