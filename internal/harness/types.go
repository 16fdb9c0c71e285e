package harness

import "github.com/roach88/hotels/internal/value"

// TraceEvent records one dispatched event and the list it left behind.
type TraceEvent struct {
	Seq     int64       `json:"seq"`
	Topic   string      `json:"topic"`
	Value   value.Value `json:"-"`
	Visible []string    `json:"visible"` // Hotel IDs in display order
	Error   string      `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool

	Trace []TraceEvent

	// Final is the visible hotel IDs after the last event.
	Final []string

	// Errors holds one message per failed expectation.
	Errors []string
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failed expectation.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
