package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yunesj/picture-rotation-fixer/internal/detect"
)

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeRotated, "rotated"},
		{OutcomeAlreadyUpright, "already_upright"},
		{OutcomeNoDetection, "no_detection"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "failed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.outcome.String())
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(FileResult{Path: "a.jpg", Angle: 90, Method: detect.MethodFace, Outcome: OutcomeRotated})
	s.Add(FileResult{Path: "b.jpg", Method: detect.MethodFace, Outcome: OutcomeAlreadyUpright})
	s.Add(FileResult{Path: "c.jpg", Outcome: OutcomeNoDetection})
	s.Add(FileResult{Path: "d.jpg", Outcome: OutcomeNoDetection})
	s.Add(FileResult{Path: "e.jpg", Outcome: OutcomeFailed, Err: errors.New("boom")})

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Rotated)
	assert.Equal(t, 1, s.AlreadyUpright)
	assert.Equal(t, 2, s.NoDetection)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 3, s.LeftAsIs())
	assert.Len(t, s.Files, 5)
	assert.Equal(t, s.Total, s.Rotated+s.AlreadyUpright+s.NoDetection+s.Failed)
}
