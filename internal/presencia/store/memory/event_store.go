package memory

import (
	"context"
	"sync"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

// EventStore is an in-memory append-only ledger.  It is intended for tests
// and dev environments.
type EventStore struct {
	mu      sync.Mutex
	events  []types.Event
	readErr error
}

func NewEventStore() *EventStore {
	return &EventStore{}
}

func (s *EventStore) AppendEvent(_ context.Context, ev types.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *EventStore) ListEvents(_ context.Context) ([]types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := make([]types.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// Seed replaces the stored rows.  Test-only helper.
func (s *EventStore) Seed(events ...types.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]types.Event(nil), events...)
}

// FailReads makes every subsequent ListEvents return err (nil restores
// normal behavior).  Test-only helper for exercising storage failures.
func (s *EventStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// Events returns a copy of all stored rows.  Test-only helper.
func (s *EventStore) Events() []types.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Event, len(s.events))
	copy(out, s.events)
	return out
}
