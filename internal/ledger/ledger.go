// Package ledger tracks who contributed which lines of which file, and the
// metric evaluations recorded against each contribution.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dotcommander/codecred/internal/metrics"
)

// Contribution is a contiguous, attributed line range of a single file.
type Contribution struct {
	ID          string      `json:"id"`
	Contributor string      `json:"contributor"`
	FileID      string      `json:"fileId"`
	StartLine   int         `json:"startLine"`
	EndLine     int         `json:"endLine"`
	Evaluations metrics.Set `json:"evaluations,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewContribution creates a validated contribution with a fresh ID.
func NewContribution(contributor, fileID string, startLine, endLine int) (*Contribution, error) {
	c := &Contribution{
		ID:          uuid.New().String(),
		Contributor: contributor,
		FileID:      fileID,
		StartLine:   startLine,
		EndLine:     endLine,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the structural invariants of a contribution.
func (c *Contribution) Validate() error {
	if c.Contributor == "" {
		return fmt.Errorf("contribution is missing a contributor")
	}
	if c.FileID == "" {
		return fmt.Errorf("contribution is missing a file")
	}
	if c.StartLine < 1 {
		return fmt.Errorf("start line %d must be at least 1", c.StartLine)
	}
	if c.EndLine < c.StartLine {
		return fmt.Errorf("end line %d precedes start line %d", c.EndLine, c.StartLine)
	}
	return nil
}

// AddEvaluation records an evaluation, replacing any existing one of the
// same kind.
func (c *Contribution) AddEvaluation(e metrics.Evaluation) {
	for i, existing := range c.Evaluations {
		if existing.Kind == e.Kind {
			c.Evaluations[i] = e
			return
		}
	}
	c.Evaluations = append(c.Evaluations, e)
}

// Value is the composite score of the contribution's evaluations, or 0.0
// when nothing has been evaluated yet.
func (c *Contribution) Value() float64 {
	return c.Evaluations.Composite()
}

// Lines is the number of lines the contribution spans.
func (c *Contribution) Lines() int {
	return c.EndLine - c.StartLine + 1
}

// Overlaps reports whether two contributions claim intersecting line ranges
// of the same file.
func (c *Contribution) Overlaps(other *Contribution) bool {
	return c.FileID == other.FileID &&
		c.StartLine <= other.EndLine &&
		c.EndLine >= other.StartLine
}

// Ledger is an in-memory contribution registry. Line ranges within a file
// must not overlap, so every line has at most one owner.
type Ledger struct {
	contributions []*Contribution
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Register adds a contribution, rejecting it if its line range intersects an
// already registered contribution for the same file.
func (l *Ledger) Register(c *Contribution) error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, existing := range l.contributions {
		if existing.Overlaps(c) {
			return fmt.Errorf("lines %d-%d of %s already attributed to %s",
				existing.StartLine, existing.EndLine, existing.FileID, existing.Contributor)
		}
	}
	l.contributions = append(l.contributions, c)
	return nil
}

// Contributions returns all registered contributions.
func (l *Ledger) Contributions() []*Contribution {
	return l.contributions
}

// ByContributor returns the contributions registered under a name.
func (l *Ledger) ByContributor(name string) []*Contribution {
	var out []*Contribution
	for _, c := range l.contributions {
		if c.Contributor == name {
			out = append(out, c)
		}
	}
	return out
}

// Contributors returns the distinct contributor names, sorted.
func (l *Ledger) Contributors() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range l.contributions {
		if !seen[c.Contributor] {
			seen[c.Contributor] = true
			names = append(names, c.Contributor)
		}
	}
	sort.Strings(names)
	return names
}
