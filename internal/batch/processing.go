package batch

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/yunesj/picture-rotation-fixer/internal/detect"
	"github.com/yunesj/picture-rotation-fixer/internal/orient"
	"github.com/yunesj/picture-rotation-fixer/internal/utils"
)

// ProcessBatch walks the root directory and fixes every image's orientation
// using a pool of parallel workers. Per-file failures are warnings counted in
// the summary; only an invalid root fails the run itself.
func ProcessBatch(config *Config) (*Summary, error) {
	files, err := discoverImageFiles(config.RootDir)
	if err != nil {
		return nil, err
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	summary := &Summary{WorkerCount: workers}
	if len(files) == 0 {
		slog.Info("no image files found", "root", config.RootDir)
		return summary, nil
	}

	progress := buildProgressCallback(config)
	progress.OnStart(len(files))
	defer progress.OnComplete()

	factory := config.DetectorFactory
	if factory == nil {
		cfg := config.Detect
		factory = func() []detect.Detector { return detect.NewDetectors(cfg) }
	}

	jobs := make(chan string, len(files))
	results := make(chan FileResult, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker(jobs, results, &wg, factory, config.DryRun)
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			jobs <- f
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	startTime := time.Now()
	completed := 0
	for res := range results {
		summary.Add(res)
		completed++
		reportFileResult(res, config.Quiet)
		progress.OnProgress(completed, len(files))
	}
	summary.Duration = time.Since(startTime)

	return summary, nil
}

// worker consumes file paths until the jobs channel closes. Detectors are
// constructed lazily on the first task and scoped to this worker alone, so
// an expensive model load is skipped entirely for empty job streams and no
// state is shared across workers.
func worker(jobs <-chan string, results chan<- FileResult, wg *sync.WaitGroup,
	factory func() []detect.Detector, dryRun bool,
) {
	defer wg.Done()

	var evaluator *orient.Evaluator
	var detectors []detect.Detector
	defer func() {
		if detectors != nil {
			if err := detect.CloseAll(detectors); err != nil {
				slog.Warn("closing detectors", "error", err)
			}
		}
	}()

	for path := range jobs {
		if evaluator == nil {
			detectors = factory()
			evaluator = orient.NewEvaluator(detectors)
		}
		results <- processFile(evaluator, path, dryRun)
	}
}

// processFile loads one image, picks its upright rotation, and rewrites the
// file in place when a non-zero angle was selected.
func processFile(evaluator *orient.Evaluator, path string, dryRun bool) FileResult {
	img, meta, err := utils.LoadImage(path)
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	decision, err := evaluator.Evaluate(img)
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	result := FileResult{Path: path, Angle: decision.Angle, Method: decision.Method}
	switch {
	case decision.Method == detect.MethodNone:
		result.Outcome = OutcomeNoDetection
		return result
	case decision.AlreadyUpright:
		result.Outcome = OutcomeAlreadyUpright
		return result
	}

	result.Outcome = OutcomeRotated
	if dryRun {
		return result
	}

	rotated, err := utils.RotateAngle(img, decision.Angle)
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeFailed, Err: err}
	}
	if err := utils.SaveImage(rotated, path, meta.Format, meta.Mode); err != nil {
		return FileResult{Path: path, Outcome: OutcomeFailed, Err: err}
	}
	return result
}

// buildProgressCallback selects the progress reporter for this run.
func buildProgressCallback(config *Config) ProgressCallback {
	if config.Quiet || !config.ShowProgress {
		return NoOpProgressCallback{}
	}
	return NewBarProgressCallback(os.Stderr, "Fixing orientation")
}

// reportFileResult emits the per-file console line. Already-upright files log
// at debug only, matching the tool's historical behavior of saying nothing
// unless something changed.
func reportFileResult(res FileResult, quiet bool) {
	switch res.Outcome {
	case OutcomeRotated:
		if !quiet {
			fmt.Printf("Rotated %s to %d°\n", res.Path, res.Angle)
		}
		slog.Debug("rotated", "file", res.Path, "angle", res.Angle, "method", res.Method.String())
	case OutcomeAlreadyUpright:
		slog.Debug("already upright", "file", res.Path, "method", res.Method.String())
	case OutcomeNoDetection:
		if !quiet {
			fmt.Printf("No faces found in %s, left as-is\n", res.Path)
		}
		slog.Debug("no detection", "file", res.Path)
	case OutcomeFailed:
		slog.Warn("failed to process", "file", res.Path, "error", res.Err)
	}
}
