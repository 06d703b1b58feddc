package metrics

import (
	"fmt"
	"math"

	"github.com/dotcommander/codecred/internal/textscan"
)

// Simplicity calibration constants. The targets are uncalibrated values
// preserved from the original scoring contract: lines near 40 characters,
// nesting under 5 levels, and a symbol density near 10% each earn a full
// sub-score.
const (
	idealLineLength     = 40.0
	nestingDepthCeiling = 5.0
	idealSymbolDensity  = 0.1
)

// symbolSet is the character class counted toward symbol density.
const symbolSet = "+-*/=<>!&|^~%?:;[](){}"

// SimplicityEvaluator scores code as the mean of three sub-scores: average
// line length, maximum brace-nesting depth, and operator/punctuation density.
// Blank lines are excluded from the line-length average. Sub-scores are only
// floored at zero; the final mean is clamped, so degenerate input (no
// non-blank lines) scores 1.0 rather than failing.
type SimplicityEvaluator struct{}

func (SimplicityEvaluator) Kind() Kind { return Simplicity }

func (SimplicityEvaluator) Describe() string {
	return "Measures purity of syntactic, semantic, and pragmatic quality to be easily digested by programmers."
}

func (SimplicityEvaluator) Evaluate(code string) Evaluation {
	var (
		totalLines  int
		totalLength int
		depth       int
		maxDepth    int
	)

	for _, line := range textscan.SplitLines(code) {
		if textscan.IsBlank(line) {
			continue
		}
		totalLines++
		totalLength += len(line)

		var lineMax int
		depth, lineMax = textscan.BraceDepth(line, depth)
		if lineMax > maxDepth {
			maxDepth = lineMax
		}
	}

	avgLineLength := 0.0
	if totalLines > 0 {
		avgLineLength = float64(totalLength) / float64(totalLines)
	}

	symbolDensity := 0.0
	if len(code) > 0 {
		symbolDensity = float64(textscan.CountAny(code, symbolSet)) / float64(len(code))
	}

	lineScore := math.Max(0.0, 1.0-(avgLineLength-idealLineLength)/idealLineLength)
	nestingScore := math.Max(0.0, 1.0-float64(maxDepth)/nestingDepthCeiling)
	symbolScore := math.Max(0.0, 1.0-math.Abs(symbolDensity-idealSymbolDensity)/idealSymbolDensity)

	return Evaluation{
		Kind:  Simplicity,
		Score: clamp01((lineScore + nestingScore + symbolScore) / 3.0),
		Rationale: fmt.Sprintf("Simplicity score based on average line length (%.2f chars), nesting depth (%d), and symbol density (%.2f).",
			avgLineLength, maxDepth, symbolDensity),
	}
}
