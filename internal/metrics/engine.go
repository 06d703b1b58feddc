package metrics

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Evaluator is the capability interface implemented by each of the six
// metric evaluators. Implementations are stateless value types; the same
// instance may be used from any number of goroutines.
type Evaluator interface {
	// Kind returns the metric this evaluator produces.
	Kind() Kind

	// Describe returns a static description of what the metric measures.
	Describe() string

	// Evaluate scores the given code. It never fails: degenerate input
	// (empty or all-whitespace code) yields the formula's value at zero
	// counts.
	Evaluate(code string) Evaluation
}

// ForKind returns the evaluator for a metric kind. The set is closed;
// requesting any other kind returns ErrUnknownKind, the only hard failure
// the engine signals.
func ForKind(k Kind) (Evaluator, error) {
	switch k {
	case Impact:
		return ImpactEvaluator{}, nil
	case Simplicity:
		return SimplicityEvaluator{}, nil
	case Cleanness:
		return CleannessEvaluator{}, nil
	case Comment:
		return CommentEvaluator{}, nil
	case Creditability:
		return CreditabilityEvaluator{}, nil
	case Novelty:
		return NoveltyEvaluator{}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// AllEvaluators returns the six evaluators in canonical kind order.
func AllEvaluators() []Evaluator {
	return []Evaluator{
		ImpactEvaluator{},
		SimplicityEvaluator{},
		CleannessEvaluator{},
		CommentEvaluator{},
		CreditabilityEvaluator{},
		NoveltyEvaluator{},
	}
}

// Engine runs the full evaluator set over one input. It retains no state
// between calls; every call is an independent computation, safe to issue
// concurrently from multiple callers.
type Engine struct {
	evaluators []Evaluator
	parallel   bool
}

// NewEngine creates an engine over the closed evaluator set.
func NewEngine() *Engine {
	return &Engine{evaluators: AllEvaluators()}
}

// WithParallel toggles concurrent evaluation. Results are identical either
// way; the evaluators share no state and the output order is fixed.
func (e *Engine) WithParallel(parallel bool) *Engine {
	e.parallel = parallel
	return e
}

// EvaluateAll runs all six evaluators against the code and returns their
// evaluations in canonical kind order.
func (e *Engine) EvaluateAll(code string) Set {
	results := make(Set, len(e.evaluators))

	if !e.parallel {
		for i, ev := range e.evaluators {
			results[i] = ev.Evaluate(code)
		}
		return results
	}

	g, _ := errgroup.WithContext(context.Background())
	for i, ev := range e.evaluators {
		g.Go(func() error {
			results[i] = ev.Evaluate(code)
			return nil
		})
	}
	_ = g.Wait() // evaluators never fail
	return results
}

// Composite returns the arithmetic mean of the six metric scores for the
// code.
func (e *Engine) Composite(code string) float64 {
	return e.EvaluateAll(code).Composite()
}
