package ledger

import (
	"context"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/presencia-app/presencia/internal/presencia/store"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

const eventsKey = "events"

// EventReader fronts the event table with a short-TTL cache and bounded
// retry.  Every reader in the system (state, hours, audit) goes through it;
// the Clerk invalidates it after a successful append so its own next read is
// consistent.  Other processes still see stale data until their own TTL
// expires: eventual, not immediate, consistency across actors.
type EventReader struct {
	store   store.EventStore
	logger  *log.Logger
	cache   *expirable.LRU[string, []types.Event]
	retries int
	backoff time.Duration
}

type ReaderOptions struct {
	TTL     time.Duration // 0 disables caching
	Retries int           // extra attempts after the first failed read
	Backoff time.Duration // base delay, grows linearly per attempt
}

func NewEventReader(st store.EventStore, logger *log.Logger, opt ReaderOptions) *EventReader {
	r := &EventReader{
		store:   st,
		logger:  logger,
		retries: opt.Retries,
		backoff: opt.Backoff,
	}
	if r.backoff <= 0 {
		r.backoff = 100 * time.Millisecond
	}
	if opt.TTL > 0 {
		// single-key cache: the backend only supports read-all-rows
		r.cache = expirable.NewLRU[string, []types.Event](1, nil, opt.TTL)
	}
	return r
}

// Events returns all ledger rows, from cache when fresh.
func (r *EventReader) Events(ctx context.Context) ([]types.Event, error) {
	if r.cache != nil {
		if evs, ok := r.cache.Get(eventsKey); ok {
			return evs, nil
		}
	}

	evs, err := r.listWithRetry(ctx)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Add(eventsKey, evs)
	}
	return evs, nil
}

// Invalidate drops the cached rows.  Called after every successful append.
func (r *EventReader) Invalidate() {
	if r.cache != nil {
		r.cache.Remove(eventsKey)
	}
}

func (r *EventReader) listWithRetry(ctx context.Context) ([]types.Event, error) {
	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * r.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		evs, err := r.store.ListEvents(ctx)
		if err == nil {
			return evs, nil
		}
		lastErr = err
		r.logger.Printf("event read attempt %d/%d failed: %v", attempt+1, r.retries+1, err)
	}
	return nil, lastErr
}
