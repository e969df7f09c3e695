package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/ledger"
	"github.com/presencia-app/presencia/internal/presencia/store/memory"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

func newResolver(st *memory.EventStore) *ledger.Resolver {
	return ledger.NewResolver(newReader(st), time.UTC)
}

func TestCurrentState_LastEventWins(t *testing.T) {
	st := memory.NewEventStore()
	st.Seed(
		ev("15/01/2026", "09:00:00", "Ana", types.KindArrival),
		ev("15/01/2026", "17:00:00", "Ana", types.KindDeparture),
		ev("15/01/2026", "18:00:00", "Ana", types.KindArrival),
	)

	if got := newResolver(st).CurrentState(context.Background(), "Ana"); got != ledger.StateIn {
		t.Fatalf("expected IN after a trailing arrival, got %s", got)
	}
}

func TestCurrentState_NoEventsIsOut(t *testing.T) {
	st := memory.NewEventStore()

	if got := newResolver(st).CurrentState(context.Background(), "Ana"); got != ledger.StateOut {
		t.Fatalf("expected OUT for an unknown employee, got %s", got)
	}
}

func TestCurrentState_SortsOutOfOrderRows(t *testing.T) {
	// Rows arrive unordered; only chronology decides the state.
	st := memory.NewEventStore()
	st.Seed(
		ev("15/01/2026", "17:00:00", "Ana", types.KindDeparture),
		ev("15/01/2026", "09:00:00", "Ana", types.KindArrival),
	)

	if got := newResolver(st).CurrentState(context.Background(), "Ana"); got != ledger.StateOut {
		t.Fatalf("expected OUT (departure is chronologically last), got %s", got)
	}
}

func TestCurrentState_IgnoresOtherEmployees(t *testing.T) {
	st := memory.NewEventStore()
	st.Seed(
		ev("15/01/2026", "09:00:00", "Ana", types.KindArrival),
		ev("15/01/2026", "10:00:00", "Berta", types.KindDeparture),
	)

	if got := newResolver(st).CurrentState(context.Background(), "Ana"); got != ledger.StateIn {
		t.Fatalf("expected IN for Ana regardless of Berta's rows, got %s", got)
	}
}

func TestCurrentState_DropsUnparseableRows(t *testing.T) {
	// A corrupt row is skipped, not fatal; the remaining rows decide.
	st := memory.NewEventStore()
	st.Seed(
		ev("15/01/2026", "09:00:00", "Ana", types.KindArrival),
		ev("not-a-date", "99:99:99", "Ana", types.KindDeparture),
	)

	if got := newResolver(st).CurrentState(context.Background(), "Ana"); got != ledger.StateIn {
		t.Fatalf("expected IN (bad row dropped), got %s", got)
	}
}

func TestCurrentState_SameSecondKeepsStorageOrder(t *testing.T) {
	// Two movements on the identical second: the table carries no finer
	// ordering key, so storage order breaks the tie.
	st := memory.NewEventStore()
	st.Seed(
		ev("15/01/2026", "09:00:00", "Ana", types.KindDeparture),
		ev("15/01/2026", "09:00:00", "Ana", types.KindArrival),
	)

	if got := newResolver(st).CurrentState(context.Background(), "Ana"); got != ledger.StateIn {
		t.Fatalf("expected IN (later storage position wins the tie), got %s", got)
	}
}

func TestCurrentState_ReadFailureDefaultsToOut(t *testing.T) {
	st := memory.NewEventStore()
	st.Seed(ev("15/01/2026", "09:00:00", "Ana", types.KindArrival))
	st.FailReads(errors.New("backend unavailable"))

	if got := newResolver(st).CurrentState(context.Background(), "Ana"); got != ledger.StateOut {
		t.Fatalf("expected neutral OUT on read failure, got %s", got)
	}
}

func TestNextKind_FlipsWithState(t *testing.T) {
	st := memory.NewEventStore()
	r := newResolver(st)

	if got := r.NextKind(context.Background(), "Ana"); got != types.KindArrival {
		t.Fatalf("expected ENTRADA for an OUT employee, got %s", got)
	}

	st.Seed(ev("15/01/2026", "09:00:00", "Ana", types.KindArrival))
	if got := r.NextKind(context.Background(), "Ana"); got != types.KindDeparture {
		t.Fatalf("expected SALIDA for an IN employee, got %s", got)
	}
}
