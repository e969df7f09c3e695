// Package admincli implements the presencia-admin command tree.  The CLI
// talks to the SQLite store directly, so it works against a live server's
// database as well as an offline copy.
package admincli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/presencia-app/presencia/internal/config"
	"github.com/presencia-app/presencia/internal/db"
	"github.com/presencia-app/presencia/internal/presencia/ledger"
	"github.com/presencia-app/presencia/internal/presencia/store/sqlite"

	_ "modernc.org/sqlite"
)

// env groups everything a command needs once the database is open.
type env struct {
	cfg        config.Config
	loc        *time.Location
	roster     *ledger.Roster
	planner    *ledger.Planner
	aggregator *ledger.Aggregator
	auditor    *ledger.Auditor
	close      func()
}

var dbPath string

// NewRootCmd builds the command tree.  A fresh tree per call keeps tests
// independent of package state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "presencia-admin",
		Short:         "Administer the presencia clock ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the presencia database (defaults to PRESENCIA_DB_PATH)")

	root.AddCommand(newEmployeeCmd())
	root.AddCommand(newCalendarCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newAuditCmd())

	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// openEnv opens the database and wires the ledger services the way the
// server does, minus the HTTP layer.
func openEnv(ctx context.Context) (*env, error) {
	cfg := config.FromEnv()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	writer := db.NewWorker(conn)

	logger := log.New(os.Stderr, "presencia-admin ", log.LstdFlags)

	eventStore := sqlite.NewEventStore(conn, writer)
	employeeStore := sqlite.NewEmployeeStore(conn, writer)
	calendarStore := sqlite.NewCalendarStore(conn, writer)

	signer := ledger.NewSigner(cfg.SigningSecret)
	// no cache: every CLI invocation wants the freshest rows
	reader := ledger.NewEventReader(eventStore, logger, ledger.ReaderOptions{Retries: cfg.ReadRetries})

	return &env{
		cfg:        cfg,
		loc:        loc,
		roster:     ledger.NewRoster(employeeStore, cfg.BaseURL),
		planner:    ledger.NewPlanner(calendarStore),
		aggregator: ledger.NewAggregator(reader, loc),
		auditor:    ledger.NewAuditor(reader, signer),
		close: func() {
			writer.Close()
			_ = conn.Close()
		},
	}, nil
}
