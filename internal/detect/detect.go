// Package detect wraps the face and object detection capabilities behind a
// uniform interface. Detectors only answer "is there a recognizable subject
// in this image as presented" - a positive match at a given rotation is taken
// as evidence that the rotation is upright.
package detect

import "image"

// Method identifies which detection capability produced a result.
type Method int

const (
	// MethodNone means no detector matched.
	MethodNone Method = iota
	// MethodFace is the frontal-face cascade.
	MethodFace
	// MethodObject is the generic object-detection model.
	MethodObject
)

func (m Method) String() string {
	switch m {
	case MethodFace:
		return "face"
	case MethodObject:
		return "object"
	default:
		return "none"
	}
}

// Result is the outcome of one evaluation call.
type Result struct {
	Found      bool
	Confidence float64
}

// Detector scores a single image presentation. Implementations must be safe
// for repeated calls from one goroutine; each worker owns its own instances.
type Detector interface {
	// Detect reports whether the detector finds a subject in img.
	Detect(img image.Image) (Result, error)

	// Method identifies the detection capability.
	Method() Method

	// Available reports whether the underlying model loaded. An unavailable
	// detector always reports Found=false and never fails the batch.
	Available() bool

	// Close releases model resources.
	Close() error
}

// Config aggregates the settings for building a detector set.
type Config struct {
	Face          FaceConfig
	Object        ObjectConfig
	DisableObject bool
}

// NewDetectors builds the detector set in cascade priority order: the cheap,
// portrait-precise face cascade first, the broader object model as fallback.
// Model load failures degrade the affected detector to unavailable instead of
// returning an error.
func NewDetectors(cfg Config) []Detector {
	detectors := []Detector{NewFaceDetector(cfg.Face)}
	if !cfg.DisableObject {
		detectors = append(detectors, NewObjectDetector(cfg.Object))
	}
	return detectors
}

// CloseAll closes every detector, keeping the first error.
func CloseAll(detectors []Detector) error {
	var firstErr error
	for _, d := range detectors {
		if err := d.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
