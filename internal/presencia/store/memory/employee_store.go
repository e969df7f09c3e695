package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

type EmployeeStore struct {
	mu        sync.RWMutex
	employees []types.Employee
}

func NewEmployeeStore(seed ...types.Employee) *EmployeeStore {
	return &EmployeeStore{employees: append([]types.Employee(nil), seed...)}
}

func (s *EmployeeStore) ResolveToken(_ context.Context, token string) (string, bool, error) {
	token = strings.TrimSpace(token)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.Token == token {
			return e.Name, true, nil
		}
	}
	return "", false, nil
}

func (s *EmployeeStore) AddEmployee(_ context.Context, emp types.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append(s.employees, emp)
	return nil
}

func (s *EmployeeStore) ListEmployees(_ context.Context) ([]types.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Employee, len(s.employees))
	copy(out, s.employees)
	return out, nil
}
