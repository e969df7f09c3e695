package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/presencia-app/presencia/internal/presencia/store"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

var ErrEmptyName = errors.New("employee name is required")

// Roster manages the token→name table and mints clock-in links.  Tokens are
// unique by construction; names are not, and the ledger format only carries
// the name, so two employees sharing one are indistinguishable downstream.
type Roster struct {
	employees store.EmployeeStore
	baseURL   string
}

func NewRoster(employees store.EmployeeStore, baseURL string) *Roster {
	return &Roster{employees: employees, baseURL: baseURL}
}

// Create mints a fresh token for the name and stores the pair.
func (r *Roster) Create(ctx context.Context, name string) (types.NewEmployeeResponse, error) {
	name = Canon(name)
	if name == "" {
		return types.NewEmployeeResponse{}, ErrEmptyName
	}

	emp := types.Employee{
		Token: uuid.NewString(),
		Name:  name,
	}
	if err := r.employees.AddEmployee(ctx, emp); err != nil {
		return types.NewEmployeeResponse{}, fmt.Errorf("add employee: %w", err)
	}

	return types.NewEmployeeResponse{
		Token: emp.Token,
		Name:  emp.Name,
		Link:  r.Link(emp.Token),
	}, nil
}

// Link builds the shareable clock-in URL for a token.
func (r *Roster) Link(token string) string {
	if r.baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/?token=%s", r.baseURL, token)
}

func (r *Roster) List(ctx context.Context) ([]types.Employee, error) {
	emps, err := r.employees.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return emps, nil
}
