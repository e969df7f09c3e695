package ledger

import (
	"context"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

// State is an employee's derived presence.
type State string

const (
	StateIn  State = "IN"
	StateOut State = "OUT"
)

// Resolver derives an employee's current IN/OUT state from the ledger.  The
// last chronologically ordered event wins: an ARRIVAL means IN, anything else
// OUT.  An employee with no events is OUT.
type Resolver struct {
	events *EventReader
	loc    *time.Location
}

func NewResolver(events *EventReader, loc *time.Location) *Resolver {
	return &Resolver{events: events, loc: loc}
}

// CurrentState never fails: a storage error degrades to the neutral OUT
// default rather than aborting the clock flow (the reader already logged it).
func (r *Resolver) CurrentState(ctx context.Context, employee string) State {
	evs, err := r.events.Events(ctx)
	if err != nil {
		return StateOut
	}

	ordered := chronological(evs, employee, r.loc)
	if len(ordered) == 0 {
		return StateOut
	}
	if ordered[len(ordered)-1].ev.Kind == types.KindArrival {
		return StateIn
	}
	return StateOut
}

// NextKind is the movement the clock page should offer next.
func (r *Resolver) NextKind(ctx context.Context, employee string) string {
	if r.CurrentState(ctx, employee) == StateIn {
		return types.KindDeparture
	}
	return types.KindArrival
}
