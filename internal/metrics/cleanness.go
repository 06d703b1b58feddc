package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dotcommander/codecred/internal/textscan"
)

// Cleanness sub-score weights and the blank-line proportion at which the
// whitespace sub-score peaks. Preserved from the original scoring contract.
const (
	indentWeight         = 0.5
	braceWeight          = 0.3
	whitespaceWeight     = 0.2
	idealBlankProportion = 0.2
)

var (
	// Same-line brace style: ") {" with nothing but spaces or tabs between.
	sameLineBracePattern = regexp.MustCompile(`\)[ \t]*\{`)
	// Next-line brace style: the brace opens on the line after the closing
	// parenthesis.
	nextLineBracePattern = regexp.MustCompile(`\)[ \t]*\r?\n[ \t]*\{`)
)

// CleannessEvaluator scores formatting hygiene: indentation consistency,
// brace placement consistency, and blank-line proportion. A single line
// mixing tabs and spaces in its indentation zeroes the indentation sub-score
// outright; the check is strict, not proportional.
type CleannessEvaluator struct{}

func (CleannessEvaluator) Kind() Kind { return Cleanness }

func (CleannessEvaluator) Describe() string {
	return "Measures proper formatting and subsymbolic and symbolic notation."
}

func (CleannessEvaluator) Evaluate(code string) Evaluation {
	var (
		totalLines   int
		blankLines   int
		inconsistent bool
		prevIndent   string
	)

	for _, line := range textscan.SplitLines(code) {
		totalLines++

		if textscan.IsBlank(line) {
			blankLines++
			continue
		}

		indent := textscan.LeadingIndent(line)

		if strings.ContainsRune(indent, '\t') && strings.ContainsRune(indent, ' ') {
			inconsistent = true
		}

		// A switch between space-led and tab-led indentation on consecutive
		// lines also counts as inconsistent.
		if prevIndent != "" && indent != "" &&
			((prevIndent[0] == ' ' && indent[0] == '\t') ||
				(prevIndent[0] == '\t' && indent[0] == ' ')) {
			inconsistent = true
		}

		prevIndent = indent
	}

	sameLine := textscan.CountPattern(code, sameLineBracePattern)
	nextLine := textscan.CountPattern(code, nextLineBracePattern)
	consistentBraces := (sameLine == 0 || nextLine == 0) && sameLine+nextLine > 0

	indentScore := 1.0
	if inconsistent {
		indentScore = 0.0
	}

	braceScore := 0.5
	if consistentBraces {
		braceScore = 1.0
	}

	blankProportion := 0.0
	if totalLines > 0 {
		blankProportion = float64(blankLines) / float64(totalLines)
	}
	whitespaceScore := clamp01(1.0 - abs(blankProportion-idealBlankProportion)/idealBlankProportion)

	score := indentScore*indentWeight + braceScore*braceWeight + whitespaceScore*whitespaceWeight

	return Evaluation{
		Kind:  Cleanness,
		Score: clamp01(score),
		Rationale: fmt.Sprintf("Cleanness score based on indentation consistency (mixed=%t), brace style (%d same-line, %d next-line), and blank-line proportion (%.2f).",
			inconsistent, sameLine, nextLine, blankProportion),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
