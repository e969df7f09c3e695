package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/presencia-app/presencia/internal/db"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

type EmployeeStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewEmployeeStore(db *sql.DB, writer *dbpkg.Worker) *EmployeeStore {
	return &EmployeeStore{db: db, writer: writer}
}

func (s *EmployeeStore) ResolveToken(ctx context.Context, token string) (string, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false, nil
	}

	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM employees WHERE token = ?;`, token,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ResolveToken: %w", err)
	}
	return name, true, nil
}

func (s *EmployeeStore) AddEmployee(ctx context.Context, emp types.Employee) error {
	nowMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO employees(token, name, created_at_ms) VALUES (?, ?, ?);
`, emp.Token, emp.Name, nowMs); err != nil {
			return fmt.Errorf("AddEmployee insert: %w", err)
		}
		return nil
	})
}

func (s *EmployeeStore) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT token, name FROM employees ORDER BY created_at_ms, token;
`)
	if err != nil {
		return nil, fmt.Errorf("ListEmployees query: %w", err)
	}
	defer rows.Close()

	var out []types.Employee
	for rows.Next() {
		var e types.Employee
		if err := rows.Scan(&e.Token, &e.Name); err != nil {
			return nil, fmt.Errorf("ListEmployees scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEmployees rows: %w", err)
	}
	return out, nil
}
