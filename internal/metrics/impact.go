package metrics

import (
	"fmt"
	"regexp"

	"github.com/dotcommander/codecred/internal/textscan"
)

// impactSaturation is the combined signal count at which the impact score
// saturates at 1.0. Uncalibrated constant carried over from the original
// scoring contract.
const impactSaturation = 20

var (
	functionCallPattern = regexp.MustCompile(`\b\w+\s*\(`)
	controlPattern      = regexp.MustCompile(`\b(if|for|while|switch)\s*\(`)
)

// ImpactEvaluator scores code by the density of function-call-like tokens
// and control structures. Control keywords followed by a parenthesis match
// both patterns and count twice; that double weighting is part of the
// scoring contract.
type ImpactEvaluator struct{}

func (ImpactEvaluator) Kind() Kind { return Impact }

func (ImpactEvaluator) Describe() string {
	return "Measures the gravity effect towards a particular line in the overall function of the program."
}

func (ImpactEvaluator) Evaluate(code string) Evaluation {
	calls := textscan.CountPattern(code, functionCallPattern)
	controls := textscan.CountPattern(code, controlPattern)

	raw := float64(calls+controls) / float64(impactSaturation)

	return Evaluation{
		Kind:  Impact,
		Score: clamp01(raw),
		Rationale: fmt.Sprintf("Impact score based on %d function calls and %d control structures.",
			calls, controls),
	}
}
