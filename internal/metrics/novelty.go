package metrics

import (
	"fmt"
	"regexp"

	"github.com/dotcommander/codecred/internal/textscan"
)

// Novelty saturation caps. The complexity signal saturates at a single
// occurrence; all three are uncalibrated constants preserved from the
// original scoring contract.
const (
	advancedFeatureCap = 3.0
	patternNameCap     = 2.0
	complexityCap      = 1.0

	advancedScoreWeight   = 0.4
	patternScoreWeight    = 0.4
	complexityScoreWeight = 0.2
)

var (
	advancedFeaturePattern = regexp.MustCompile(`\b(template|constexpr|decltype|concept|requires|noexcept|auto|lambda|fold|structured\s+binding)\b`)
	patternNamePattern     = regexp.MustCompile(`\b(Factory|Builder|Singleton|Adapter|Bridge|Composite|Decorator|Facade|Proxy|Observer|Strategy|Command|State|Visitor|Interpreter|Iterator|Mediator|Memento|Prototype)\b`)
	complexityPattern      = regexp.MustCompile(`O\([^\)]*\)`)
)

// NoveltyEvaluator scores advanced-language-feature keywords, design-pattern
// names, and Big-O complexity annotations. Pattern names must be capitalized
// to count.
type NoveltyEvaluator struct{}

func (NoveltyEvaluator) Kind() Kind { return Novelty }

func (NoveltyEvaluator) Describe() string {
	return "Measures creative and exotic approach to problem-solving."
}

func (NoveltyEvaluator) Evaluate(code string) Evaluation {
	advanced := textscan.CountPattern(code, advancedFeaturePattern)
	patterns := textscan.CountPattern(code, patternNamePattern)
	complexity := textscan.CountPattern(code, complexityPattern)

	advancedScore := minFloat(1.0, float64(advanced)/advancedFeatureCap)
	patternScore := minFloat(1.0, float64(patterns)/patternNameCap)
	complexityScore := minFloat(1.0, float64(complexity)/complexityCap)

	score := advancedScore*advancedScoreWeight + patternScore*patternScoreWeight + complexityScore*complexityScoreWeight

	return Evaluation{
		Kind:  Novelty,
		Score: clamp01(score),
		Rationale: fmt.Sprintf("Novelty score based on advanced language features (%d), design patterns (%d), and algorithm analysis (%d).",
			advanced, patterns, complexity),
	}
}
