package harness

import (
	"github.com/roach88/decor/internal/exporter"
	"github.com/roach88/decor/internal/store"
)

// BlockOutcome is the result for one scenario block.
type BlockOutcome struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Gate      bool   `json:"gate"`
	Decorated bool   `json:"decorated"`
	Markup    string `json:"markup"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Markup is the rendered document.
	Markup string `json:"markup"`

	// Blocks holds per-block outcomes in document order.
	Blocks []BlockOutcome `json:"blocks"`

	// Export is the journal entry written for this run.
	Export store.Export `json:"export"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result from an export.
func NewResult(out *exporter.Output, gates []bool) *Result {
	r := &Result{
		Pass:   true,
		Markup: out.Markup,
		Blocks: make([]BlockOutcome, len(out.Blocks)),
		Errors: []string{},
	}
	for i, b := range out.Blocks {
		r.Blocks[i] = BlockOutcome{
			Key:       b.Key,
			Type:      b.Type,
			Gate:      gates[i],
			Decorated: b.Decorated,
			Markup:    b.Markup,
		}
	}
	return r
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Block returns the outcome for key.
func (r *Result) Block(key string) (BlockOutcome, bool) {
	for _, b := range r.Blocks {
		if b.Key == key {
			return b, true
		}
	}
	return BlockOutcome{}, false
}
