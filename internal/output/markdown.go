package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// MarkdownFormatter renders scoring results as a Markdown report.
type MarkdownFormatter struct {
	quiet      bool
	verbose    bool
	outputFile string
	out        io.Writer
}

// NewMarkdownFormatter creates a Markdown formatter. With an output file it
// writes there; otherwise it writes to stdout.
func NewMarkdownFormatter(quiet, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		quiet:      quiet,
		verbose:    verbose,
		outputFile: outputFile,
		out:        os.Stdout,
	}
}

// Format renders the summary as Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) error {
	var builder strings.Builder

	builder.WriteString("# CodeCred Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Duration:** %v\n\n", time.Since(summary.StartTime).Round(time.Millisecond)))
	builder.WriteString(strings.Repeat("-", 50) + "\n\n")

	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Value |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Files Scored | %d |\n", summary.TotalFiles()))
	builder.WriteString(fmt.Sprintf("| Passed | %d |\n", summary.PassedFiles()))
	builder.WriteString(fmt.Sprintf("| Failed | %d |\n", summary.FailedFiles()))
	builder.WriteString(fmt.Sprintf("| Minimum Score | %.2f |\n", summary.MinScore))
	builder.WriteString(fmt.Sprintf("| Average | %.2f |\n", summary.AverageComposite()))
	builder.WriteString("\n")

	builder.WriteString("## Results\n\n")
	if summary.TotalFiles() == 0 {
		builder.WriteString("*No files found to score.*\n")
	} else {
		builder.WriteString("| File | Composite | Label |\n")
		builder.WriteString("|------|-----------|-------|\n")
		for _, result := range summary.Results {
			builder.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n",
				result.File, result.Composite, result.Label))
		}
		builder.WriteString("\n")

		if f.verbose {
			for _, result := range summary.Results {
				builder.WriteString(fmt.Sprintf("### %s\n\n", result.File))
				builder.WriteString("| Metric | Score | Rationale |\n")
				builder.WriteString("|--------|-------|-----------|\n")
				for _, e := range result.Evaluations {
					builder.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n",
						e.Kind.String(), e.Score, e.Rationale))
				}
				builder.WriteString("\n")
			}
		}
	}

	if len(summary.Skipped) > 0 {
		builder.WriteString("## Skipped\n\n")
		for _, s := range summary.Skipped {
			builder.WriteString(fmt.Sprintf("- **%s** - %s\n", s.File, s.Reason))
		}
		builder.WriteString("\n")
	}

	content := builder.String()

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", f.outputFile, err)
		}
		if !f.quiet {
			fmt.Fprintf(f.out, "Report written to %s\n", f.outputFile)
		}
		return nil
	}

	_, err := io.WriteString(f.out, content)
	return err
}
