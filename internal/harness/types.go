package harness

import (
	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/session"
)

// RequestResult records what one simulated request produced.
type RequestResult struct {
	// Payload is the finalized, sorted segment list.
	Payload []ir.Segment `json:"payload"`

	// Flash is what the request left for the next one.
	Flash session.Phases `json:"flash"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Requests holds one entry per executed request.
	Requests []RequestResult `json:"requests"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Requests: []RequestResult{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
