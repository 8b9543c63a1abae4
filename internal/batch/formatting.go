package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// FormatSummary renders the batch summary in the requested format.
func (s *Summary) FormatSummary(format string) (string, error) {
	switch format {
	case "json":
		return s.formatJSON()
	case "", "text":
		return s.formatText(), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", format)
	}
}

func (s *Summary) formatJSON() (string, error) {
	out := struct {
		*Summary
		LeftAsIs int          `json:"left_as_is"`
		Files    []fileRecord `json:"files"`
	}{
		Summary:  s,
		LeftAsIs: s.LeftAsIs(),
		Files:    make([]fileRecord, 0, len(s.Files)),
	}

	for _, f := range s.Files {
		rec := fileRecord{
			Path:    f.Path,
			Angle:   f.Angle,
			Method:  f.Method.String(),
			Outcome: f.Outcome.String(),
		}
		if f.Err != nil {
			rec.Error = f.Err.Error()
		}
		out.Files = append(out.Files, rec)
	}

	bts, err := json.MarshalIndent(out, "", "  ")
	return string(bts), err
}

type fileRecord struct {
	Path    string `json:"path"`
	Angle   int    `json:"angle"`
	Method  string `json:"method"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

func (s *Summary) formatText() string {
	var b strings.Builder
	b.WriteString("\nSummary:\n")
	fmt.Fprintf(&b, "  Total images: %d\n", s.Total)
	fmt.Fprintf(&b, "  Rotated: %d\n", s.Rotated)
	fmt.Fprintf(&b, "  Left as-is: %d (already upright: %d, no detection: %d)\n",
		s.LeftAsIs(), s.AlreadyUpright, s.NoDetection)
	fmt.Fprintf(&b, "  Failed: %d\n", s.Failed)
	fmt.Fprintf(&b, "  Workers: %d\n", s.WorkerCount)
	fmt.Fprintf(&b, "  Duration: %v\n", s.Duration.Round(time.Millisecond))
	return b.String()
}

// SaveSummary writes the formatted summary to a file, or to stdout when no
// output file is configured.
func (s *Summary) SaveSummary(format, outputFile string, quiet bool) error {
	output, err := s.FormatSummary(format)
	if err != nil {
		return fmt.Errorf("failed to format summary: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Summary written to %s\n", outputFile)
		}
		return nil
	}

	if !quiet {
		_, _ = fmt.Fprint(os.Stdout, output)
	}
	return nil
}
