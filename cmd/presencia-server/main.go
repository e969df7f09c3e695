package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/presencia-app/presencia/internal/config"
	"github.com/presencia-app/presencia/internal/db"
	"github.com/presencia-app/presencia/internal/httpapi"
	"github.com/presencia-app/presencia/internal/presencia/ledger"
	"github.com/presencia-app/presencia/internal/presencia/store/sqlite"

	_ "modernc.org/sqlite"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "presencia-server ", log.LstdFlags|log.LUTC)

	if cfg.SigningSecret == "" || cfg.AdminSecret == "" {
		logger.Fatal("PRESENCIA_SIGNING_SECRET and PRESENCIA_ADMIN_SECRET are required outside dev")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("load timezone %q: %v", cfg.Timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if cfg.Env == "dev" {
		if err := db.SeedDev(ctx, conn, db.SeedDevOptions{}); err != nil {
			logger.Printf("seed dev data: %v", err)
		}
	}

	writer := db.NewWorker(conn)
	defer writer.Close()

	// Stores
	eventStore := sqlite.NewEventStore(conn, writer)
	employeeStore := sqlite.NewEmployeeStore(conn, writer)
	calendarStore := sqlite.NewCalendarStore(conn, writer)

	// Ledger services
	signer := ledger.NewSigner(cfg.SigningSecret)
	reader := ledger.NewEventReader(eventStore, logger, ledger.ReaderOptions{
		TTL:     time.Duration(cfg.CacheTTLSeconds) * time.Second,
		Retries: cfg.ReadRetries,
	})
	gate := ledger.NewGate(calendarStore, logger)
	resolver := ledger.NewResolver(reader, loc)
	aggregator := ledger.NewAggregator(reader, loc)
	auditor := ledger.NewAuditor(reader, signer)
	clerk := ledger.NewClerk(employeeStore, eventStore, reader, gate, resolver, signer, loc)
	roster := ledger.NewRoster(employeeStore, cfg.BaseURL)
	planner := ledger.NewPlanner(calendarStore)

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:      logger,
		Addr:        cfg.HTTPAddr,
		AdminSecret: cfg.AdminSecret,
		Clerk:       clerk,
		Aggregator:  aggregator,
		Auditor:     auditor,
		Roster:      roster,
		Planner:     planner,
	})

	go func() {
		logger.Printf("listening on %s (zone=%s env=%s)", cfg.HTTPAddr, cfg.Timezone, cfg.Env)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
