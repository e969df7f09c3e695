package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/store"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

var (
	ErrUnknownToken = errors.New("unknown token")
	ErrInvalidKind  = errors.New("kind must be ENTRADA or SALIDA")
)

// BlockedDayError is returned when the eligibility gate denies a clock-in.
type BlockedDayError struct {
	Reason string
}

func (e *BlockedDayError) Error() string {
	return fmt.Sprintf("day is blocked: %s", e.Reason)
}

// Clerk owns the one write path into the ledger: resolve the token, check
// the blackout calendar, stamp, sign, append, invalidate the read cache.
//
// The clock page asks Suggest for the logical next movement, but Clock signs
// whatever kind the caller requests: it deliberately does not enforce
// ARRIVAL/DEPARTURE alternation, and there is no per-employee lock, so two
// racing requests can both land the same kind.  Both gaps are inherited
// behavior the ledger's consumers already tolerate (the aggregator's pairing
// policy absorbs doubled arrivals).
type Clerk struct {
	employees store.EmployeeStore
	events    store.EventStore
	reader    *EventReader
	gate      *Gate
	resolver  *Resolver
	signer    *Signer
	loc       *time.Location
	now       func() time.Time
}

func NewClerk(
	employees store.EmployeeStore,
	events store.EventStore,
	reader *EventReader,
	gate *Gate,
	resolver *Resolver,
	signer *Signer,
	loc *time.Location,
) *Clerk {
	return &Clerk{
		employees: employees,
		events:    events,
		reader:    reader,
		gate:      gate,
		resolver:  resolver,
		signer:    signer,
		loc:       loc,
		now:       time.Now,
	}
}

// SetNow overrides the clock source.  Test-only helper.
func (c *Clerk) SetNow(now func() time.Time) { c.now = now }

// Clock records one movement for the employee behind token.
func (c *Clerk) Clock(ctx context.Context, token, kind, device string) (types.ClockResponse, error) {
	name, ok, err := c.employees.ResolveToken(ctx, token)
	if err != nil {
		return types.ClockResponse{}, fmt.Errorf("resolve token: %w", err)
	}
	if !ok {
		return types.ClockResponse{}, ErrUnknownToken
	}

	kind = strings.TrimSpace(kind)
	if kind != types.KindArrival && kind != types.KindDeparture {
		return types.ClockResponse{}, ErrInvalidKind
	}

	now := c.now().In(c.loc)
	date := now.Format(DateLayout)
	tm := now.Format(TimeLayout)

	if d := c.gate.CanClock(ctx, name, date); !d.Allowed {
		return types.ClockResponse{
			Employee: name,
			Kind:     kind,
			Reason:   d.Reason,
		}, &BlockedDayError{Reason: d.Reason}
	}

	device = Canon(device)
	ev := types.Event{
		Date:     date,
		Time:     tm,
		Employee: name, // the ledger joins on the display name, not the token
		Kind:     kind,
		Device:   device,
	}
	ev.Signature = c.signer.Sign(ev.Date, ev.Time, ev.Employee, ev.Kind, ev.Device)

	if err := c.events.AppendEvent(ctx, ev); err != nil {
		return types.ClockResponse{}, fmt.Errorf("append event: %w", err)
	}

	// the writer's own next read must observe this row
	c.reader.Invalidate()

	return types.ClockResponse{
		OK:       true,
		Employee: name,
		Kind:     kind,
		Date:     date,
		Time:     tm,
	}, nil
}

// Suggest resolves the token and reports which movement the clock page
// should offer next.
func (c *Clerk) Suggest(ctx context.Context, token string) (types.SuggestResponse, error) {
	name, ok, err := c.employees.ResolveToken(ctx, token)
	if err != nil {
		return types.SuggestResponse{}, fmt.Errorf("resolve token: %w", err)
	}
	if !ok {
		return types.SuggestResponse{}, ErrUnknownToken
	}

	state := c.resolver.CurrentState(ctx, name)
	return types.SuggestResponse{
		Employee:  name,
		ClockedIn: state == StateIn,
		NextKind:  c.resolver.NextKind(ctx, name),
	}, nil
}
