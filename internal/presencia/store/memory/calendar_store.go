package memory

import (
	"context"
	"sync"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

type CalendarStore struct {
	mu      sync.Mutex
	blocks  []types.CalendarBlock
	readErr error
}

func NewCalendarStore(seed ...types.CalendarBlock) *CalendarStore {
	return &CalendarStore{blocks: append([]types.CalendarBlock(nil), seed...)}
}

func (s *CalendarStore) ListBlocks(_ context.Context) ([]types.CalendarBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := make([]types.CalendarBlock, len(s.blocks))
	copy(out, s.blocks)
	return out, nil
}

func (s *CalendarStore) AppendBlocks(_ context.Context, blocks []types.CalendarBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, blocks...)
	return nil
}

func (s *CalendarStore) ReplaceBlocks(_ context.Context, blocks []types.CalendarBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append([]types.CalendarBlock(nil), blocks...)
	return nil
}

// FailReads makes every subsequent ListBlocks return err.  Test-only helper
// for exercising the fail-open eligibility path.
func (s *CalendarStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}
