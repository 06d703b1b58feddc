package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// JSONFormatter renders scoring results as JSON.
type JSONFormatter struct {
	quiet      bool
	outputFile string
	out        io.Writer
}

// NewJSONFormatter creates a JSON formatter. With an output file it writes
// there; otherwise it writes to stdout.
func NewJSONFormatter(quiet bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		quiet:      quiet,
		outputFile: outputFile,
		out:        os.Stdout,
	}
}

// JSONReport is the top-level JSON document.
type JSONReport struct {
	Header  JSONHeader    `json:"header"`
	Summary JSONSummary   `json:"summary"`
	Results []FileReport  `json:"results"`
	Skipped []SkippedFile `json:"skipped,omitempty"`
}

// JSONHeader identifies the tool run that produced the report.
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONSummary carries the run statistics.
type JSONSummary struct {
	TotalFiles  int     `json:"totalFiles"`
	PassedFiles int     `json:"passedFiles"`
	FailedFiles int     `json:"failedFiles"`
	MinScore    float64 `json:"minScore"`
	Average     float64 `json:"average"`
	Duration    string  `json:"duration"`
}

// Format renders the summary as indented JSON.
func (f *JSONFormatter) Format(summary *Summary) error {
	report := JSONReport{
		Header: JSONHeader{
			Tool:      "codecred",
			Version:   "1.0.0",
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Summary: JSONSummary{
			TotalFiles:  summary.TotalFiles(),
			PassedFiles: summary.PassedFiles(),
			FailedFiles: summary.FailedFiles(),
			MinScore:    summary.MinScore,
			Average:     summary.AverageComposite(),
			Duration:    time.Since(summary.StartTime).Round(time.Millisecond).String(),
		},
		Results: summary.Results,
		Skipped: summary.Skipped,
	}
	if report.Results == nil {
		report.Results = []FileReport{}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", f.outputFile, err)
		}
		if !f.quiet {
			fmt.Fprintf(f.out, "Report written to %s\n", f.outputFile)
		}
		return nil
	}

	_, err = f.out.Write(data)
	return err
}
