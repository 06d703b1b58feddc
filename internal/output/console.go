package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/codecred/internal/metrics"
)

// ConsoleFormatter renders scoring results for terminal display.
type ConsoleFormatter struct {
	quiet    bool
	verbose  bool
	colorize bool
	out      io.Writer
}

// NewConsoleFormatter creates a console formatter writing to stdout.
func NewConsoleFormatter(quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:    quiet,
		verbose:  verbose,
		colorize: true,
		out:      os.Stdout,
	}
}

// Format renders the summary.
func (f *ConsoleFormatter) Format(summary *Summary) error {
	if f.quiet {
		// Only the exit code matters in quiet mode
		return nil
	}

	f.printFileResults(summary)
	f.printSkipped(summary)
	f.printSummary(summary)
	f.printConclusion(summary)

	return nil
}

// printFileResults prints one line per scored file, with the metric
// breakdown in verbose mode.
func (f *ConsoleFormatter) printFileResults(summary *Summary) {
	for _, result := range summary.Results {
		passed := result.Composite >= summary.MinScore

		status := "✓"
		if !passed {
			status = "✗"
		}

		var fileStyle lipgloss.Style
		if f.colorize {
			if passed {
				fileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
			} else {
				fileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red
			}
		}

		fmt.Fprintf(f.out, "%s %s  %.2f (%s)\n",
			fileStyle.Render(status), result.File, result.Composite, result.Label)

		if f.verbose {
			for _, e := range result.Evaluations {
				f.printEvaluation(e)
			}
		}
	}
}

// printEvaluation prints one metric line, colored by score band.
func (f *ConsoleFormatter) printEvaluation(e metrics.Evaluation) {
	var style lipgloss.Style
	if f.colorize {
		switch {
		case e.Score >= 0.7:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
		case e.Score >= 0.4:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
		default:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red
		}
	}

	fmt.Fprintf(f.out, "    %s %s\n",
		style.Render(fmt.Sprintf("%-13s %.2f", e.Kind.String(), e.Score)),
		e.Rationale)
}

// printSkipped lists files that were discovered but not scored.
func (f *ConsoleFormatter) printSkipped(summary *Summary) {
	if len(summary.Skipped) == 0 {
		return
	}

	var style lipgloss.Style
	if f.colorize {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	}
	for _, s := range summary.Skipped {
		fmt.Fprintf(f.out, "%s %s: %s\n", style.Render("⚠"), s.File, s.Reason)
	}
}

// printSummary prints the run statistics.
func (f *ConsoleFormatter) printSummary(summary *Summary) {
	if summary.TotalFiles() == 0 {
		fmt.Fprintln(f.out, "No files scored")
		return
	}

	duration := time.Since(summary.StartTime)
	fmt.Fprintf(f.out, "\n%d/%d passed, average %.2f (%v)\n",
		summary.PassedFiles(), summary.TotalFiles(),
		summary.AverageComposite(),
		duration.Round(time.Millisecond))
}

// printConclusion prints the closing line when everything passed.
func (f *ConsoleFormatter) printConclusion(summary *Summary) {
	if summary.TotalFiles() == 0 || summary.FailedFiles() > 0 {
		return
	}

	if f.colorize {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
		fmt.Fprintf(f.out, "%s\n", style.Render("✓ All passed"))
	} else {
		fmt.Fprintln(f.out, "✓ All passed")
	}
}
