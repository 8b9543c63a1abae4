package batch

import (
	"time"

	"github.com/yunesj/picture-rotation-fixer/internal/detect"
)

// Config holds all configuration for one batch run.
type Config struct {
	// RootDir is the directory tree to process.
	RootDir string

	// Workers is the parallel worker count (0 = runtime.NumCPU()).
	Workers int

	// Detect configures the per-worker detector set.
	Detect detect.Config

	// DetectorFactory overrides detector construction. Each worker calls it
	// once, lazily, on its first task. Nil means detect.NewDetectors(Detect).
	DetectorFactory func() []detect.Detector

	// DryRun evaluates and reports without rewriting any file.
	DryRun bool

	// Progress settings.
	ShowProgress bool
	Quiet        bool

	// Summary output settings.
	Format     string
	OutputFile string
}

// Outcome classifies what happened to a single file.
type Outcome int

const (
	// OutcomeRotated means a non-zero angle was detected and the file rewritten.
	OutcomeRotated Outcome = iota
	// OutcomeAlreadyUpright means a detector matched at 0°; the file is untouched.
	OutcomeAlreadyUpright
	// OutcomeNoDetection means no detector matched at any angle; the file is
	// left as-is. This is not an error.
	OutcomeNoDetection
	// OutcomeFailed means the file could not be processed (unreadable,
	// undecodable, detector failure, write failure).
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRotated:
		return "rotated"
	case OutcomeAlreadyUpright:
		return "already_upright"
	case OutcomeNoDetection:
		return "no_detection"
	default:
		return "failed"
	}
}

// FileResult is the per-file outcome produced by a worker.
type FileResult struct {
	Path    string
	Angle   int
	Method  detect.Method
	Outcome Outcome
	Err     error
}

// Summary aggregates per-file outcomes across the whole batch. The counts
// are commutative, so the reduction is order-independent.
type Summary struct {
	Total          int           `json:"total"`
	Rotated        int           `json:"rotated"`
	AlreadyUpright int           `json:"already_upright"`
	NoDetection    int           `json:"no_detection"`
	Failed         int           `json:"failed"`
	Duration       time.Duration `json:"duration_ns"`
	WorkerCount    int           `json:"worker_count"`

	// Files holds every per-file result for formatted output.
	Files []FileResult `json:"-"`
}

// Add folds one file result into the summary.
func (s *Summary) Add(r FileResult) {
	s.Total++
	s.Files = append(s.Files, r)
	switch r.Outcome {
	case OutcomeRotated:
		s.Rotated++
	case OutcomeAlreadyUpright:
		s.AlreadyUpright++
	case OutcomeNoDetection:
		s.NoDetection++
	case OutcomeFailed:
		s.Failed++
	}
}

// LeftAsIs counts files that completed without a rewrite.
func (s *Summary) LeftAsIs() int {
	return s.AlreadyUpright + s.NoDetection
}
