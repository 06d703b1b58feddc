// Package textscan provides low-level text analysis primitives shared by the
// metric evaluators. All functions are pure: they operate on their arguments
// in a single pass and keep no state between calls, so callers may invoke
// them concurrently on different inputs without coordination.
package textscan

import (
	"regexp"
	"strings"
)

// SplitLines splits code on newlines. Empty lines are preserved and no
// trimming is performed; a trailing carriage return stays attached to its
// line and is treated as whitespace by IsBlank.
func SplitLines(code string) []string {
	return strings.Split(code, "\n")
}

// IsBlank reports whether a line is empty or contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimRight(strings.TrimLeft(line, " \t\r\n"), " \t\r\n") == ""
}

// BraceDepth advances a running brace-nesting depth across one line.
// It returns the depth after the line and the maximum depth observed while
// scanning it. Depth is floored at zero so unbalanced closing braces in
// malformed input never drive it negative.
func BraceDepth(line string, depth int) (next, max int) {
	next = depth
	max = depth
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '{':
			next++
			if next > max {
				max = next
			}
		case '}':
			if next > 0 {
				next--
			}
		}
	}
	return next, max
}

// CountPattern counts non-overlapping matches of a compiled regular
// expression across the whole text.
func CountPattern(code string, re *regexp.Regexp) int {
	return len(re.FindAllStringIndex(code, -1))
}

// CountAny counts the characters of code that appear in the given set.
func CountAny(code, set string) int {
	n := 0
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(set, code[i]) >= 0 {
			n++
		}
	}
	return n
}

// LeadingWhitespace returns the number of spaces and tabs at the start of a
// line, stopping at the first character that is neither.
func LeadingWhitespace(line string) (spaces, tabs int) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			spaces++
		case '\t':
			tabs++
		default:
			return spaces, tabs
		}
	}
	return spaces, tabs
}

// LeadingIndent returns the run of spaces and tabs at the start of a line.
func LeadingIndent(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

// HasCommentOpen reports whether a line contains a /* token.
func HasCommentOpen(line string) bool {
	return strings.Contains(line, "/*")
}

// HasCommentClose reports whether a line contains a */ token.
func HasCommentClose(line string) bool {
	return strings.Contains(line, "*/")
}

// metadataPattern matches doc-style metadata tags such as "* @author: Name".
var metadataPattern = regexp.MustCompile(`\*\s*@(\w+)\s*:\s*([^*]+)`)

// metadataScanLimit bounds how many leading lines ScanMetadata inspects.
const metadataScanLimit = 20

// ScanMetadata extracts "@key: value" pairs from doc comments in the first
// few lines of a file. Values are trimmed; later occurrences of a key win.
func ScanMetadata(code string) map[string]string {
	meta := make(map[string]string)
	lines := SplitLines(code)
	if len(lines) > metadataScanLimit {
		lines = lines[:metadataScanLimit]
	}
	for _, line := range lines {
		m := metadataPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		meta[m[1]] = strings.TrimSpace(m[2])
	}
	return meta
}
