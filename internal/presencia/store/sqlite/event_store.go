package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/presencia-app/presencia/internal/db"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

// EventStore persists the clock ledger.  Appends go through the single
// writer worker; reads return rows in insertion order, which doubles as the
// tie-breaker for events stamped on the same second.
type EventStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewEventStore(db *sql.DB, writer *dbpkg.Worker) *EventStore {
	return &EventStore{db: db, writer: writer}
}

func (s *EventStore) AppendEvent(ctx context.Context, ev types.Event) error {
	nowMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO events(date, time, employee, kind, device, signature, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);
`,
			ev.Date, ev.Time, ev.Employee, ev.Kind, ev.Device, ev.Signature, nowMs,
		); err != nil {
			return fmt.Errorf("AppendEvent insert: %w", err)
		}
		return nil
	})
}

func (s *EventStore) ListEvents(ctx context.Context) ([]types.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT date, time, employee, kind, device, signature
FROM events
ORDER BY id;
`)
	if err != nil {
		return nil, fmt.Errorf("ListEvents query: %w", err)
	}
	defer rows.Close()

	var out []types.Event
	for rows.Next() {
		var ev types.Event
		if err := rows.Scan(&ev.Date, &ev.Time, &ev.Employee, &ev.Kind, &ev.Device, &ev.Signature); err != nil {
			return nil, fmt.Errorf("ListEvents scan: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEvents rows: %w", err)
	}
	return out, nil
}
