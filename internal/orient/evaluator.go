// Package orient picks the upright rotation for a single photo by probing
// the four right angles against a prioritized set of detectors.
package orient

import (
	"errors"
	"fmt"
	"image"

	"github.com/yunesj/picture-rotation-fixer/internal/detect"
	"github.com/yunesj/picture-rotation-fixer/internal/utils"
)

// Angles is the fixed, deterministic probe order. First match wins; there is
// no exhaustive scoring or tie-break beyond this order.
var Angles = [4]int{0, 90, 180, 270}

// Decision is the selected rotation for one image.
type Decision struct {
	// Angle is the rotation to apply, one of 0/90/180/270. Zero either means
	// the image is already upright or that nothing was detected; Method and
	// AlreadyUpright distinguish the two.
	Angle          int
	Method         detect.Method
	Confidence     float64
	AlreadyUpright bool
}

// Rotated reports whether the decision calls for rewriting the file.
func (d Decision) Rotated() bool {
	return d.Method != detect.MethodNone && d.Angle != 0
}

// Evaluator probes rotations with detectors in priority order.
type Evaluator struct {
	detectors []detect.Detector
}

// NewEvaluator builds an evaluator over the given detectors. Order is the
// cascade priority: a later detector is consulted only after an earlier one
// found nothing at any angle.
func NewEvaluator(detectors []detect.Detector) *Evaluator {
	return &Evaluator{detectors: detectors}
}

// Evaluate returns the first (detector, angle) combination that yields a
// detection, walking angles in fixed order per detector. A detection at 0°
// leaves the image untouched but is still attributed to its method so
// reporting can tell "already upright" from "nothing found".
func (e *Evaluator) Evaluate(img image.Image) (Decision, error) {
	if img == nil {
		return Decision{}, errors.New("nil image")
	}

	for _, d := range e.detectors {
		if !d.Available() {
			continue
		}
		for _, angle := range Angles {
			probe, err := utils.RotateAngle(img, angle)
			if err != nil {
				return Decision{}, err
			}
			res, err := d.Detect(probe)
			if err != nil {
				return Decision{}, fmt.Errorf("%s detection at %d°: %w", d.Method(), angle, err)
			}
			if res.Found {
				return Decision{
					Angle:          angle,
					Method:         d.Method(),
					Confidence:     res.Confidence,
					AlreadyUpright: angle == 0,
				}, nil
			}
		}
	}

	return Decision{Angle: 0, Method: detect.MethodNone}, nil
}
