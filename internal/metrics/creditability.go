package metrics

import (
	"fmt"
	"regexp"

	"github.com/dotcommander/codecred/internal/textscan"
)

// Creditability saturation caps per signal category. Each sub-score is
// min(1, count/cap); the caps are uncalibrated constants preserved from the
// original scoring contract.
const (
	testIndicatorCap = 5.0
	docIndicatorCap  = 10.0
	refIndicatorCap  = 2.0

	testScoreWeight = 0.4
	docScoreWeight  = 0.4
	refScoreWeight  = 0.2
)

var (
	testIndicatorPattern = regexp.MustCompile(`\b(test|assert|expect|should|mock|stub|spy)\b`)
	docIndicatorPattern  = regexp.MustCompile(`@(param|return|throws?|see|link|since|version|author|deprecated)`)
	refIndicatorPattern  = regexp.MustCompile(`(http|https)://[^\s"'<>]+|(RFC|IEEE|ISO)[- ][0-9]+`)
)

// CreditabilityEvaluator scores evidence of testing, documentation tags, and
// references to external standards or resources. Matching is case-sensitive,
// as in the original contract.
type CreditabilityEvaluator struct{}

func (CreditabilityEvaluator) Kind() Kind { return Creditability }

func (CreditabilityEvaluator) Describe() string {
	return "Measures evidence that technique is compatible with architecture requirements."
}

func (CreditabilityEvaluator) Evaluate(code string) Evaluation {
	tests := textscan.CountPattern(code, testIndicatorPattern)
	docs := textscan.CountPattern(code, docIndicatorPattern)
	refs := textscan.CountPattern(code, refIndicatorPattern)

	testScore := minFloat(1.0, float64(tests)/testIndicatorCap)
	docScore := minFloat(1.0, float64(docs)/docIndicatorCap)
	refScore := minFloat(1.0, float64(refs)/refIndicatorCap)

	score := testScore*testScoreWeight + docScore*docScoreWeight + refScore*refScoreWeight

	return Evaluation{
		Kind:  Creditability,
		Score: clamp01(score),
		Rationale: fmt.Sprintf("Creditability score based on evidence of testing (%d), documentation (%d), and references (%d).",
			tests, docs, refs),
	}
}
