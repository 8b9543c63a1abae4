package onnx

import (
	"errors"
	"fmt"
)

// Tensor is a float32 buffer paired with its NCHW shape, ready to hand to an
// inference session.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// NewImageTensor wraps one normalized image as a batch-of-one tensor with
// shape [1, C, H, W]. data must hold exactly c*h*w values in channel-major
// order.
func NewImageTensor(data []float32, c, h, w int) (Tensor, error) {
	if data == nil {
		return Tensor{}, errors.New("nil data")
	}
	if want := c * h * w; len(data) != want {
		return Tensor{}, fmt.Errorf("unexpected data length: got %d, want %d", len(data), want)
	}
	return Tensor{
		Data:  data,
		Shape: []int64{1, int64(c), int64(h), int64(w)},
	}, nil
}

// ValidateNCHW rejects shapes that are not four positive dimensions.
func ValidateNCHW(shape []int64) error {
	if len(shape) != 4 {
		return fmt.Errorf("shape rank %d != 4", len(shape))
	}
	for i, v := range shape {
		if v <= 0 {
			return fmt.Errorf("dimension %d must be > 0, got %d", i, v)
		}
	}
	return nil
}

// VerifyImageTensor checks that a tensor's buffer agrees with its shape
// before it is submitted to the runtime.
func VerifyImageTensor(t Tensor) error {
	if err := ValidateNCHW(t.Shape); err != nil {
		return err
	}
	want := int64(1)
	for _, v := range t.Shape {
		want *= v
	}
	if int64(len(t.Data)) != want {
		return fmt.Errorf("tensor data length %d != expected %d for shape %v", len(t.Data), want, t.Shape)
	}
	return nil
}
