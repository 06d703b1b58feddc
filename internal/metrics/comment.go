package metrics

import (
	"fmt"
	"strings"

	"github.com/dotcommander/codecred/internal/textscan"
)

// Comment calibration constants: the density sub-score peaks when 30% of all
// lines are comments, and the length sub-score saturates at 8 words per
// comment. Preserved from the original scoring contract.
const (
	idealCommentDensity   = 0.3
	commentWordSaturation = 8.0
	densityScoreWeight    = 0.6
	lengthScoreWeight     = 0.4
)

// CommentEvaluator scores comment density and average comment length. Block
// comments are tracked with a straddling-state flag so every line inside a
// /* */ span counts as a comment line. A line holding both code and a
// trailing // comment counts as a comment line; density is measured against
// all lines, blank ones included.
type CommentEvaluator struct{}

func (CommentEvaluator) Kind() Kind { return Comment }

func (CommentEvaluator) Describe() string {
	return "Measures quality of non-opinionated statements with no syntactic sugar."
}

func (CommentEvaluator) Evaluate(code string) Evaluation {
	var (
		totalLines   int
		commentLines int
		comments     []string
		inBlock      bool
	)

	for _, line := range textscan.SplitLines(code) {
		totalLines++

		if textscan.IsBlank(line) {
			continue
		}

		switch {
		case inBlock:
			commentLines++
			comments = append(comments, line)
			if textscan.HasCommentClose(line) {
				inBlock = false
			}
		case textscan.HasCommentOpen(line):
			commentLines++
			open := strings.Index(line, "/*")
			comments = append(comments, line[open:])
			end := strings.Index(line, "*/")
			inBlock = end < 0 || end <= open
		default:
			if idx := strings.Index(line, "//"); idx >= 0 {
				commentLines++
				comments = append(comments, line[idx+2:])
			}
		}
	}

	density := 0.0
	if totalLines > 0 {
		density = float64(commentLines) / float64(totalLines)
	}

	words := 0
	for _, c := range comments {
		words += len(strings.Fields(c))
	}
	avgWords := 0.0
	if len(comments) > 0 {
		avgWords = float64(words) / float64(len(comments))
	}

	densityScore := maxFloat(0.0, 1.0-abs(density-idealCommentDensity)/idealCommentDensity)
	lengthScore := minFloat(1.0, avgWords/commentWordSaturation)

	score := densityScore*densityScoreWeight + lengthScore*lengthScoreWeight

	return Evaluation{
		Kind:  Comment,
		Score: clamp01(score),
		Rationale: fmt.Sprintf("Comment score based on density (%.1f%%) and average length (%.2f words).",
			density*100, avgWords),
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
