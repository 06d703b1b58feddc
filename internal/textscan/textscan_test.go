package textscan

import (
	"reflect"
	"regexp"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"empty", "", []string{""}},
		{"single", "abc", []string{"abc"}},
		{"trailing newline", "a\nb\n", []string{"a", "b", ""}},
		{"preserves empties", "a\n\n\nb", []string{"a", "", "", "b"}},
		{"no trimming", "  a  \n\tb", []string{"  a  ", "\tb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.code); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\t", true},
		{"\r", true},
		{" x ", false},
		{"}", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.line); got != tt.want {
			t.Errorf("IsBlank(%q) = %t, want %t", tt.line, got, tt.want)
		}
	}
}

func TestBraceDepth(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		depth    int
		wantNext int
		wantMax  int
	}{
		{"no braces", "x = 1;", 2, 2, 2},
		{"open", "if (x) {", 0, 1, 1},
		{"close", "}", 3, 2, 3},
		{"open and close", "f(x) { y(); }", 0, 0, 1},
		{"floors at zero", "}}}", 1, 0, 1},
		{"nested on one line", "{{{", 0, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, max := BraceDepth(tt.line, tt.depth)
			if next != tt.wantNext || max != tt.wantMax {
				t.Errorf("BraceDepth(%q, %d) = (%d, %d), want (%d, %d)",
					tt.line, tt.depth, next, max, tt.wantNext, tt.wantMax)
			}
		})
	}
}

func TestBraceDepthNeverNegative(t *testing.T) {
	depth := 0
	for _, line := range SplitLines("}\n}}\nfoo();\n}") {
		depth, _ = BraceDepth(line, depth)
		if depth < 0 {
			t.Fatalf("depth went negative: %d", depth)
		}
	}
}

func TestCountPattern(t *testing.T) {
	re := regexp.MustCompile(`\bfoo\b`)

	tests := []struct {
		code string
		want int
	}{
		{"", 0},
		{"foo", 1},
		{"foo foo foobar foo", 3},
	}

	for _, tt := range tests {
		if got := CountPattern(tt.code, re); got != tt.want {
			t.Errorf("CountPattern(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestCountAny(t *testing.T) {
	tests := []struct {
		code string
		set  string
		want int
	}{
		{"a+b=c", "+-*/=", 2},
		{"plain words", "+-*/=", 0},
		{"", "+-", 0},
		{"{{}}", "{}", 4},
	}

	for _, tt := range tests {
		if got := CountAny(tt.code, tt.set); got != tt.want {
			t.Errorf("CountAny(%q, %q) = %d, want %d", tt.code, tt.set, got, tt.want)
		}
	}
}

func TestLeadingWhitespace(t *testing.T) {
	tests := []struct {
		line       string
		wantSpaces int
		wantTabs   int
	}{
		{"    x", 4, 0},
		{"\t\tx", 0, 2},
		{" \t x", 2, 1},
		{"x", 0, 0},
		{"   ", 3, 0},
	}

	for _, tt := range tests {
		spaces, tabs := LeadingWhitespace(tt.line)
		if spaces != tt.wantSpaces || tabs != tt.wantTabs {
			t.Errorf("LeadingWhitespace(%q) = (%d, %d), want (%d, %d)",
				tt.line, spaces, tabs, tt.wantSpaces, tt.wantTabs)
		}
	}
}

func TestLeadingIndent(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"    x", "    "},
		{"\t x", "\t "},
		{"x", ""},
		{"  ", "  "},
	}

	for _, tt := range tests {
		if got := LeadingIndent(tt.line); got != tt.want {
			t.Errorf("LeadingIndent(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestCommentTokens(t *testing.T) {
	if !HasCommentOpen("x = 1; /* start") {
		t.Error("expected comment open")
	}
	if HasCommentOpen("x = 1; // line") {
		t.Error("unexpected comment open")
	}
	if !HasCommentClose("end */ y = 2;") {
		t.Error("expected comment close")
	}
}

func TestScanMetadata(t *testing.T) {
	code := "/**\n" +
		" * @file: sample.cpp\n" +
		" * @author: Test Author\n" +
		" * @version: 1.0\n" +
		" */\n"

	meta := ScanMetadata(code)
	want := map[string]string{
		"file":    "sample.cpp",
		"author":  "Test Author",
		"version": "1.0",
	}
	if !reflect.DeepEqual(meta, want) {
		t.Errorf("ScanMetadata = %v, want %v", meta, want)
	}
}

func TestScanMetadataStopsAfterLimit(t *testing.T) {
	var code string
	for i := 0; i < 25; i++ {
		code += "x = 1;\n"
	}
	code += "/* @late: value */\n"

	if meta := ScanMetadata(code); len(meta) != 0 {
		t.Errorf("expected metadata past line limit to be ignored, got %v", meta)
	}
}
