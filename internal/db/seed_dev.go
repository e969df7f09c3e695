package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SeedDevOptions struct {
	// Optional fixed token so the dev clock link stays stable across resets.
	DemoToken string
	DemoName  string
}

func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	token := opt.DemoToken
	if token == "" {
		token = "dev-token-0001"
	}
	name := opt.DemoName
	if name == "" {
		name = "Empleado Demo"
	}

	now := time.Now().UTC().UnixMilli()

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO employees(token, name, created_at_ms)
VALUES (?, ?, ?);`, token, name, now); err != nil {
		return fmt.Errorf("seed demo employee: %w", err)
	}

	return nil
}
