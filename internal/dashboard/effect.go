package dashboard

import (
	"context"

	"github.com/nhle/email-triage/internal/model"
)

// Op identifies the kind of remote call an effect performs.
type Op int

const (
	OpFetch Op = iota
	OpToggleImportance
	OpDelete
	OpMarkRead
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpToggleImportance:
		return "toggle-importance"
	case OpDelete:
		return "delete"
	case OpMarkRead:
		return "mark-read"
	default:
		return "unknown"
	}
}

// Result is the outcome of a Pending effect.
type Result struct {
	Op      Op
	ID      string
	Records []model.EmailRecord
	Err     error
}

// Pending is a remote call issued by a transition but not yet run.
type Pending struct {
	op  Op
	id  string
	run func(ctx context.Context) ([]model.EmailRecord, error)
}

// Op returns the kind of call.
func (p *Pending) Op() Op { return p.op }

// ID returns the record the call concerns, empty for fetches.
func (p *Pending) ID() string { return p.id }

// Run performs the call. It is safe to run off the controller's goroutine;
// the Result must be handed back to Apply on it.
func (p *Pending) Run(ctx context.Context) Result {
	records, err := p.run(ctx)
	return Result{Op: p.op, ID: p.id, Records: records, Err: err}
}
