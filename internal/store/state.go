// Package store holds the client-side state containers. Each store is a
// single-writer, in-memory structure mutated only through its operations and
// observed through read accessors and change subscriptions.
package store

// Phase describes where an asynchronous operation is in its lifecycle.
type Phase string

// Phase constants. Exactly one holds at a time.
const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// RequestState is the normalized status of one remote operation.
// ErrorMessage is set only in the failed phase.
type RequestState struct {
	Phase        Phase
	ErrorMessage string
}

// Pending reports whether the operation is in flight.
func (r RequestState) Pending() bool {
	return r.Phase == PhasePending
}

func (r *RequestState) begin() {
	r.Phase = PhasePending
	r.ErrorMessage = ""
}

func (r *RequestState) succeed() {
	r.Phase = PhaseSucceeded
	r.ErrorMessage = ""
}

func (r *RequestState) fail(msg string) {
	r.Phase = PhaseFailed
	r.ErrorMessage = msg
}
