package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	dbpkg "github.com/presencia-app/presencia/internal/db"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

type CalendarStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewCalendarStore(db *sql.DB, writer *dbpkg.Worker) *CalendarStore {
	return &CalendarStore{db: db, writer: writer}
}

func (s *CalendarStore) ListBlocks(ctx context.Context) ([]types.CalendarBlock, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT date, scope, employee, reason FROM calendar_blocks ORDER BY id;
`)
	if err != nil {
		return nil, fmt.Errorf("ListBlocks query: %w", err)
	}
	defer rows.Close()

	var out []types.CalendarBlock
	for rows.Next() {
		var b types.CalendarBlock
		if err := rows.Scan(&b.Date, &b.Scope, &b.Employee, &b.Reason); err != nil {
			return nil, fmt.Errorf("ListBlocks scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBlocks rows: %w", err)
	}
	return out, nil
}

func (s *CalendarStore) AppendBlocks(ctx context.Context, blocks []types.CalendarBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return insertBlocks(ctx, tx, blocks)
	})
}

// ReplaceBlocks rewrites the whole table in one transaction, matching the
// bulk-edit semantics of the spreadsheet backend this schema descends from.
func (s *CalendarStore) ReplaceBlocks(ctx context.Context, blocks []types.CalendarBlock) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM calendar_blocks;`); err != nil {
			return fmt.Errorf("ReplaceBlocks delete: %w", err)
		}
		return insertBlocks(ctx, tx, blocks)
	})
}

func insertBlocks(ctx context.Context, tx *sql.Tx, blocks []types.CalendarBlock) error {
	for _, b := range blocks {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO calendar_blocks(date, scope, employee, reason) VALUES (?, ?, ?, ?);
`, b.Date, b.Scope, b.Employee, b.Reason); err != nil {
			return fmt.Errorf("insert block %s: %w", b.Date, err)
		}
	}
	return nil
}
