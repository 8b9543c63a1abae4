package detect

import "fmt"

// Detection model heads lay out their raw output as either
// [1, attrs, anchors] or [1, anchors, attrs], where the first four
// attributes are box geometry and the remainder are per-class scores.

const boxAttrs = 4 // cx, cy, w, h precede the class scores

// DecodeDetections scans a raw detection output tensor and reports whether
// any candidate's best class score reaches threshold, along with the highest
// score seen. Geometry is never decoded; presence is the only question.
func DecodeDetections(data []float32, shape []int64, threshold float64) (Result, error) {
	if len(shape) != 3 || shape[0] != 1 {
		return Result{}, fmt.Errorf("unexpected output shape %v", shape)
	}

	d1, d2 := int(shape[1]), int(shape[2])
	if d1 <= boxAttrs && d2 <= boxAttrs {
		return Result{}, fmt.Errorf("output shape %v has no class columns", shape)
	}
	if len(data) < d1*d2 {
		return Result{}, fmt.Errorf("output data length %d < %d for shape %v", len(data), d1*d2, shape)
	}

	// Attribute count is far smaller than anchor count in every exported
	// head, so the smaller middle dimension marks the attrs-first layout.
	var attrs, anchors int
	attrsFirst := d1 < d2
	if attrsFirst {
		attrs, anchors = d1, d2
	} else {
		anchors, attrs = d1, d2
	}

	var best float64
	for a := 0; a < anchors; a++ {
		for c := boxAttrs; c < attrs; c++ {
			var v float32
			if attrsFirst {
				v = data[c*anchors+a]
			} else {
				v = data[a*attrs+c]
			}
			if fv := float64(v); fv > best {
				best = fv
			}
		}
	}

	return Result{Found: best >= threshold, Confidence: best}, nil
}
