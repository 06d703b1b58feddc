// Package output renders scoring results for the console, JSON consumers,
// and Markdown reports.
package output

import (
	"fmt"
	"time"

	"github.com/dotcommander/codecred/internal/metrics"
)

// FileReport is the scored result for one file.
type FileReport struct {
	File        string      `json:"file"`
	Lines       int         `json:"lines"`
	Evaluations metrics.Set `json:"evaluations"`
	Composite   float64     `json:"composite"`
	Label       string      `json:"label"`
}

// SkippedFile records a file that was discovered but not scored.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Summary aggregates a whole scoring run.
type Summary struct {
	Results   []FileReport
	Skipped   []SkippedFile
	MinScore  float64
	StartTime time.Time
}

// TotalFiles is the number of scored files.
func (s *Summary) TotalFiles() int {
	return len(s.Results)
}

// PassedFiles counts files whose composite meets the minimum score.
func (s *Summary) PassedFiles() int {
	passed := 0
	for _, r := range s.Results {
		if r.Composite >= s.MinScore {
			passed++
		}
	}
	return passed
}

// FailedFiles counts files below the minimum score.
func (s *Summary) FailedFiles() int {
	return s.TotalFiles() - s.PassedFiles()
}

// AverageComposite is the mean composite across scored files, 0.0 when no
// files were scored.
func (s *Summary) AverageComposite() float64 {
	if len(s.Results) == 0 {
		return 0.0
	}
	var sum float64
	for _, r := range s.Results {
		sum += r.Composite
	}
	return sum / float64(len(s.Results))
}

// Formatter renders a summary to its destination.
type Formatter interface {
	Format(summary *Summary) error
}

// NewFormatter creates the formatter for a format name.
func NewFormatter(format string, quiet, verbose bool, outputFile string) (Formatter, error) {
	switch format {
	case "console":
		return NewConsoleFormatter(quiet, verbose), nil
	case "json":
		return NewJSONFormatter(quiet, outputFile), nil
	case "markdown":
		return NewMarkdownFormatter(quiet, verbose, outputFile), nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}
