package ledger

import (
	"context"
	"log"

	"github.com/presencia-app/presencia/internal/presencia/store"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

// Decision is the outcome of an eligibility check.
type Decision struct {
	Allowed bool
	Reason  string // populated on denial
}

// Gate decides whether an employee may clock on a given calendar date by
// consulting the blackout table.
//
// On a calendar read failure the gate fails OPEN: a transient storage
// problem must not lock every employee out of clocking in, so the failure is
// logged and the day treated as allowed.  This availability-over-strictness
// tradeoff is deliberate; do not flip it to fail-closed without changing the
// policy explicitly.
type Gate struct {
	calendar store.CalendarStore
	logger   *log.Logger
}

func NewGate(cal store.CalendarStore, logger *log.Logger) *Gate {
	return &Gate{calendar: cal, logger: logger}
}

// CanClock scans the blackout table for an exact date match, in table order.
// Any GLOBAL row on the date denies everyone, regardless of where it sits
// relative to INDIVIDUAL rows; otherwise the first INDIVIDUAL row matching
// both date and employee denies.  No range inference: only materialized
// per-day rows count, so the day before or after a blocked day is allowed.
func (g *Gate) CanClock(ctx context.Context, employee, date string) Decision {
	blocks, err := g.calendar.ListBlocks(ctx)
	if err != nil {
		g.logger.Printf("calendar read failed, allowing clock (fail-open): %v", err)
		return Decision{Allowed: true}
	}

	individual := -1
	for i, b := range blocks {
		if b.Date != date {
			continue
		}
		if b.Scope == types.ScopeGlobal {
			return Decision{Allowed: false, Reason: b.Reason}
		}
		if b.Scope == types.ScopeIndividual && b.Employee == employee && individual < 0 {
			individual = i
		}
	}
	if individual >= 0 {
		return Decision{Allowed: false, Reason: blocks[individual].Reason}
	}
	return Decision{Allowed: true}
}
