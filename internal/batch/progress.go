package batch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressCallback receives batch completion updates keyed on processed-file
// count over total discovered count.
type ProgressCallback interface {
	// OnStart is called when processing begins with the total number of files.
	OnStart(total int)

	// OnProgress is called after each completed file.
	OnProgress(current, total int)

	// OnComplete is called when processing is finished.
	OnComplete()
}

// NoOpProgressCallback implements ProgressCallback but does nothing.
type NoOpProgressCallback struct{}

func (NoOpProgressCallback) OnStart(total int)             {}
func (NoOpProgressCallback) OnProgress(current, total int) {}
func (NoOpProgressCallback) OnComplete()                   {}

// BarProgressCallback renders a live console progress bar. The bar writes to
// stderr by default so per-file log lines on stdout stay parseable.
type BarProgressCallback struct {
	writer      io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBarProgressCallback creates a console progress bar reporter.
func NewBarProgressCallback(writer io.Writer, description string) *BarProgressCallback {
	if writer == nil {
		writer = os.Stderr
	}
	return &BarProgressCallback{writer: writer, description: description}
}

func (c *BarProgressCallback) OnStart(total int) {
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(c.description),
		progressbar.OptionSetWriter(c.writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}

func (c *BarProgressCallback) OnProgress(current, total int) {
	if c.bar != nil {
		_ = c.bar.Set(current)
	}
}

func (c *BarProgressCallback) OnComplete() {
	if c.bar != nil {
		_ = c.bar.Finish()
		_, _ = fmt.Fprintln(c.writer)
	}
}

// LogProgressCallback logs progress updates using slog. Used for quiet runs
// where an interactive bar would pollute captured output.
type LogProgressCallback struct {
	logger    *slog.Logger
	interval  int // log every N files
	lastLog   int
	startTime time.Time
}

// NewLogProgressCallback creates a log-based progress reporter.
func NewLogProgressCallback(logger *slog.Logger) *LogProgressCallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogProgressCallback{logger: logger, interval: 25}
}

// WithInterval sets how frequently to log progress (every N files).
func (l *LogProgressCallback) WithInterval(interval int) *LogProgressCallback {
	if interval > 0 {
		l.interval = interval
	}
	return l
}

func (l *LogProgressCallback) OnStart(total int) {
	l.startTime = time.Now()
	l.lastLog = 0
	l.logger.Info("starting batch", "total", total)
}

func (l *LogProgressCallback) OnProgress(current, total int) {
	if current-l.lastLog < l.interval && current != total {
		return
	}
	l.lastLog = current
	elapsed := time.Since(l.startTime)
	l.logger.Info("batch progress",
		"current", current,
		"total", total,
		"elapsed", elapsed.Round(time.Millisecond),
	)
}

func (l *LogProgressCallback) OnComplete() {
	l.logger.Info("batch complete", "elapsed", time.Since(l.startTime).Round(time.Millisecond))
}
