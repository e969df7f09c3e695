package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/ledger"
	"github.com/presencia-app/presencia/internal/presencia/store/memory"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

// flakyStore fails the first N reads, then delegates to the wrapped store.
type flakyStore struct {
	mu        sync.Mutex
	failFirst int
	calls     int
	inner     *memory.EventStore
}

func (f *flakyStore) AppendEvent(ctx context.Context, ev types.Event) error {
	return f.inner.AppendEvent(ctx, ev)
}

func (f *flakyStore) ListEvents(ctx context.Context) ([]types.Event, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if n <= f.failFirst {
		return nil, errors.New("transient backend error")
	}
	return f.inner.ListEvents(ctx)
}

func TestEventReader_CachesUntilInvalidated(t *testing.T) {
	st := memory.NewEventStore()
	st.Seed(ev("15/01/2026", "09:00:00", "Ana", types.KindArrival))

	r := ledger.NewEventReader(st, discardLogger(), ledger.ReaderOptions{TTL: time.Hour})

	first, err := r.Events(context.Background())
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 event, got %d", len(first))
	}

	// A row appended behind the cache's back stays invisible...
	st.Seed(
		ev("15/01/2026", "09:00:00", "Ana", types.KindArrival),
		ev("15/01/2026", "17:00:00", "Ana", types.KindDeparture),
	)
	stale, _ := r.Events(context.Background())
	if len(stale) != 1 {
		t.Fatalf("expected stale cached read of 1 event, got %d", len(stale))
	}

	// ...until the writer invalidates.
	r.Invalidate()
	fresh, _ := r.Events(context.Background())
	if len(fresh) != 2 {
		t.Fatalf("expected 2 events after invalidation, got %d", len(fresh))
	}
}

func TestEventReader_RetriesTransientFailures(t *testing.T) {
	inner := memory.NewEventStore()
	inner.Seed(ev("15/01/2026", "09:00:00", "Ana", types.KindArrival))
	st := &flakyStore{failFirst: 2, inner: inner}

	r := ledger.NewEventReader(st, discardLogger(), ledger.ReaderOptions{
		Retries: 2,
		Backoff: time.Millisecond,
	})

	evs, err := r.Events(context.Background())
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if st.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", st.calls)
	}
}

func TestEventReader_SurfacesExhaustedRetries(t *testing.T) {
	st := &flakyStore{failFirst: 10, inner: memory.NewEventStore()}

	r := ledger.NewEventReader(st, discardLogger(), ledger.ReaderOptions{
		Retries: 1,
		Backoff: time.Millisecond,
	})

	if _, err := r.Events(context.Background()); err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if st.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", st.calls)
	}
}
