package utils

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ImageProcessingError wraps an error with the operation that produced it.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error {
	return e.Err
}

// Rotate90 rotates the image 90 degrees counter-clockwise.
func Rotate90(img image.Image) image.Image { return imaging.Rotate90(img) }

// Rotate180 rotates the image 180 degrees.
func Rotate180(img image.Image) image.Image { return imaging.Rotate180(img) }

// Rotate270 rotates the image 270 degrees counter-clockwise.
func Rotate270(img image.Image) image.Image { return imaging.Rotate270(img) }

// RotateAngle rotates img by one of the four right angles. Probe and rewrite
// both go through this function, so a detection found on a rotated probe is
// reproduced exactly by the final rewrite.
func RotateAngle(img image.Image, angle int) (image.Image, error) {
	switch angle {
	case 0:
		return img, nil
	case 90:
		return Rotate90(img), nil
	case 180:
		return Rotate180(img), nil
	case 270:
		return Rotate270(img), nil
	default:
		return nil, fmt.Errorf("unsupported rotation angle: %d", angle)
	}
}

// NormalizeImage converts an image to an NCHW float32 tensor for ONNX input:
// RGB channels only, pixel values scaled from 0-255 to 0-1.
func NormalizeImage(img image.Image) ([]float32, int, int, error) {
	if img == nil {
		return nil, 0, 0, &ImageProcessingError{Operation: "normalize", Err: errors.New("input image is nil")}
	}

	// Clone to NRGBA so every source model has plain RGB channels.
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	tensor := make([]float32, 3*height*width)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := nrgba.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()

			rIdx := 0*height*width + y*width + x
			gIdx := 1*height*width + y*width + x
			bIdx := 2*height*width + y*width + x

			tensor[rIdx] = float32(r>>8) / 255.0
			tensor[gIdx] = float32(g>>8) / 255.0
			tensor[bIdx] = float32(b>>8) / 255.0
		}
	}

	return tensor, width, height, nil
}
