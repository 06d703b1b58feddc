// Package metrics implements the six-metric code valuation engine. Each
// evaluator is a pure function of the input text: the same code string always
// produces the same score and rationale, and every score is clamped to the
// [0, 1] range regardless of intermediate arithmetic.
package metrics

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the six quality metrics. The set is closed: it is
// never extended at runtime.
type Kind int

const (
	Impact Kind = iota
	Simplicity
	Cleanness
	Comment
	Creditability
	Novelty
)

// Kinds enumerates all metric kinds in their canonical order. EvaluateAll
// emits evaluations in this order.
var Kinds = []Kind{Impact, Simplicity, Cleanness, Comment, Creditability, Novelty}

// ErrUnknownKind is returned when a Kind outside the closed set is used.
var ErrUnknownKind = errors.New("unknown metric kind")

func (k Kind) String() string {
	switch k {
	case Impact:
		return "impact"
	case Simplicity:
		return "simplicity"
	case Cleanness:
		return "cleanness"
	case Comment:
		return "comment"
	case Creditability:
		return "creditability"
	case Novelty:
		return "novelty"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a metric name to its Kind. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler so kinds render as names in
// JSON reports.
func (k Kind) MarshalText() ([]byte, error) {
	if k < Impact || k > Novelty {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Evaluation is the immutable result of running one evaluator over one code
// input.
type Evaluation struct {
	Kind      Kind    `json:"kind"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

// Set is an ordered collection of exactly one Evaluation per Kind, produced
// atomically by the engine for a single input.
type Set []Evaluation

// Composite returns the arithmetic mean of the scores in the set, or 0.0 for
// an empty set.
func (s Set) Composite() float64 {
	if len(s) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, e := range s {
		sum += e.Score
	}
	return sum / float64(len(s))
}

// ByKind returns the evaluation for the given kind.
func (s Set) ByKind(k Kind) (Evaluation, bool) {
	for _, e := range s {
		if e.Kind == k {
			return e, true
		}
	}
	return Evaluation{}, false
}

// Qualitative score labels, bucketed from the composite score.
const (
	LabelExceptional  = "exceptional"
	LabelExcellent    = "excellent"
	LabelVeryGood     = "very good"
	LabelGood         = "good"
	LabelFair         = "fair"
	LabelBelowAverage = "below average"
	LabelPoor         = "poor"
	LabelVeryPoor     = "very poor"
)

// LabelFromScore buckets a composite score into a qualitative label.
func LabelFromScore(score float64) string {
	switch {
	case score >= 0.9:
		return LabelExceptional
	case score >= 0.8:
		return LabelExcellent
	case score >= 0.7:
		return LabelVeryGood
	case score >= 0.6:
		return LabelGood
	case score >= 0.5:
		return LabelFair
	case score >= 0.4:
		return LabelBelowAverage
	case score >= 0.3:
		return LabelPoor
	default:
		return LabelVeryPoor
	}
}

// clamp01 bounds a score to [0, 1]. Evaluators clamp rather than error when
// intermediate arithmetic escapes the range.
func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
