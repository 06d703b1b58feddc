package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dotcommander/codecred/internal/metrics"
)

func sampleSummary() *Summary {
	return &Summary{
		Results: []FileReport{
			{
				File:  "src/good.go",
				Lines: 120,
				Evaluations: metrics.Set{
					{Kind: metrics.Impact, Score: 0.9, Rationale: "Impact score based on 15 function calls and 3 control structures."},
					{Kind: metrics.Comment, Score: 0.7, Rationale: "Comment score based on density (30.0%) and average length (6.00 words)."},
				},
				Composite: 0.8,
				Label:     metrics.LabelExcellent,
			},
			{
				File:      "src/bad.go",
				Lines:     40,
				Composite: 0.3,
				Label:     metrics.LabelPoor,
			},
		},
		Skipped:   []SkippedFile{{File: "huge.go", Reason: "input exceeds maximum file size"}},
		MinScore:  0.5,
		StartTime: time.Now(),
	}
}

func TestSummaryStats(t *testing.T) {
	s := sampleSummary()

	if got := s.TotalFiles(); got != 2 {
		t.Errorf("TotalFiles = %d, want 2", got)
	}
	if got := s.PassedFiles(); got != 1 {
		t.Errorf("PassedFiles = %d, want 1", got)
	}
	if got := s.FailedFiles(); got != 1 {
		t.Errorf("FailedFiles = %d, want 1", got)
	}
	if got := s.AverageComposite(); got != 0.55 {
		t.Errorf("AverageComposite = %v, want 0.55", got)
	}
}

func TestSummaryStatsEmpty(t *testing.T) {
	s := &Summary{StartTime: time.Now()}
	if got := s.AverageComposite(); got != 0.0 {
		t.Errorf("AverageComposite = %v, want 0.0", got)
	}
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"console", "json", "markdown"} {
		if _, err := NewFormatter(format, false, false, ""); err != nil {
			t.Errorf("NewFormatter(%q) failed: %v", format, err)
		}
	}
	if _, err := NewFormatter("xml", false, false, ""); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(false, true)
	f.out = &buf
	f.colorize = false

	if err := f.Format(sampleSummary()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"✓ src/good.go  0.80 (excellent)",
		"✗ src/bad.go  0.30 (poor)",
		"impact",
		"function calls",
		"⚠ huge.go: input exceeds maximum file size",
		"1/2 passed, average 0.55",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "All passed") {
		t.Error("conclusion should not print when a file failed")
	}
}

func TestConsoleFormatQuiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(true, false)
	f.out = &buf

	if err := f.Format(sampleSummary()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("quiet mode produced output: %q", buf.String())
	}
}

func TestConsoleFormatAllPassed(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(false, false)
	f.out = &buf
	f.colorize = false

	s := sampleSummary()
	s.MinScore = 0.0
	s.Skipped = nil

	if err := f.Format(s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "✓ All passed") {
		t.Errorf("expected conclusion, got:\n%s", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(false, "")
	f.out = &buf

	if err := f.Format(sampleSummary()); err != nil {
		t.Fatal(err)
	}

	var report JSONReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Header.Tool != "codecred" {
		t.Errorf("tool = %q", report.Header.Tool)
	}
	if report.Summary.TotalFiles != 2 || report.Summary.PassedFiles != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].Label != metrics.LabelExcellent {
		t.Errorf("label = %q", report.Results[0].Label)
	}
}

func TestJSONFormatToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	var buf bytes.Buffer
	f := NewJSONFormatter(true, path)
	f.out = &buf

	if err := f.Format(sampleSummary()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var report JSONReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("invalid JSON in file: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("quiet mode printed: %q", buf.String())
	}
}

func TestMarkdownFormat(t *testing.T) {
	var buf bytes.Buffer
	f := NewMarkdownFormatter(false, true, "")
	f.out = &buf

	if err := f.Format(sampleSummary()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"# CodeCred Report",
		"| Files Scored | 2 |",
		"| src/good.go | 0.80 | excellent |",
		"### src/good.go",
		"## Skipped",
		"- **huge.go** - input exceeds maximum file size",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestMarkdownFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewMarkdownFormatter(false, false, "")
	f.out = &buf

	if err := f.Format(&Summary{StartTime: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "*No files found to score.*") {
		t.Error("expected empty-run marker")
	}
}
