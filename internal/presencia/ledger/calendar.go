package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/store"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

var ErrBadRange = errors.New("range end is before range start")

// maxRangeDays caps a single blackout range.  A fat-fingered year-long range
// would otherwise materialize hundreds of rows the admin then has to bulk
// replace away.
const maxRangeDays = 366

// Planner maintains the blackout table.  Ranges picked by the admin are
// expanded into one row per calendar day before storage; lookups only ever
// see materialized days, never ranges.
type Planner struct {
	calendar store.CalendarStore
}

func NewPlanner(cal store.CalendarStore) *Planner {
	return &Planner{calendar: cal}
}

// ExpandRange materializes a date range into per-day blocks.
func ExpandRange(r types.CalendarRange) ([]types.CalendarBlock, error) {
	from, err := time.Parse(DateLayout, r.From)
	if err != nil {
		return nil, fmt.Errorf("parse range start %q: %w", r.From, err)
	}
	to, err := time.Parse(DateLayout, r.To)
	if err != nil {
		return nil, fmt.Errorf("parse range end %q: %w", r.To, err)
	}
	if to.Before(from) {
		return nil, ErrBadRange
	}
	if int(to.Sub(from)/(24*time.Hour)) >= maxRangeDays {
		return nil, fmt.Errorf("range longer than %d days", maxRangeDays)
	}

	scope := r.Scope
	if scope != types.ScopeIndividual {
		scope = types.ScopeGlobal
	}
	employee := Canon(r.Employee)
	if scope == types.ScopeGlobal {
		employee = types.ScopeAllEmployees
	} else if employee == "" {
		return nil, fmt.Errorf("individual block needs an employee name")
	}

	var blocks []types.CalendarBlock
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		blocks = append(blocks, types.CalendarBlock{
			Date:     d.Format(DateLayout),
			Scope:    scope,
			Employee: employee,
			Reason:   r.Reason,
		})
	}
	return blocks, nil
}

// AddRange expands and appends one blackout range.
func (p *Planner) AddRange(ctx context.Context, r types.CalendarRange) ([]types.CalendarBlock, error) {
	blocks, err := ExpandRange(r)
	if err != nil {
		return nil, err
	}
	if err := p.calendar.AppendBlocks(ctx, blocks); err != nil {
		return nil, fmt.Errorf("append blocks: %w", err)
	}
	return blocks, nil
}

func (p *Planner) List(ctx context.Context) ([]types.CalendarBlock, error) {
	blocks, err := p.calendar.ListBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return blocks, nil
}

// Replace rewrites the whole table; edits and deletions are bulk operations
// on the spreadsheet-shaped backend.
func (p *Planner) Replace(ctx context.Context, blocks []types.CalendarBlock) error {
	if err := p.calendar.ReplaceBlocks(ctx, blocks); err != nil {
		return fmt.Errorf("replace blocks: %w", err)
	}
	return nil
}
