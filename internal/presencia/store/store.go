package store

import (
	"context"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

// The store interfaces model the spreadsheet-shaped backend the system grew
// up on: append a row, read every row, or rewrite a whole table.  No backend
// is expected to offer row-level updates, and no caller relies on them.

// EventStore persists clock movements as an append-only ledger.
type EventStore interface {
	// AppendEvent adds exactly one row.  Rows are never updated in place.
	AppendEvent(ctx context.Context, ev types.Event) error
	// ListEvents returns every row in storage order.
	ListEvents(ctx context.Context) ([]types.Event, error)
}

// EmployeeStore maps clock-in tokens to display names.
type EmployeeStore interface {
	// ResolveToken returns the display name for a token.  ok is false when
	// the token is unknown; that is not an error.
	ResolveToken(ctx context.Context, token string) (name string, ok bool, err error)
	AddEmployee(ctx context.Context, emp types.Employee) error
	ListEmployees(ctx context.Context) ([]types.Employee, error)
}

// CalendarStore holds blacked-out days, one row per day.
type CalendarStore interface {
	ListBlocks(ctx context.Context) ([]types.CalendarBlock, error)
	AppendBlocks(ctx context.Context, blocks []types.CalendarBlock) error
	// ReplaceBlocks rewrites the whole table, the only mutation the
	// spreadsheet-style backend supports for edits and deletions.
	ReplaceBlocks(ctx context.Context, blocks []types.CalendarBlock) error
}
