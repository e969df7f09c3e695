package db

import (
	"context"
	"database/sql"
)

// TxFn runs inside a write transaction owned by the Worker.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// Worker serializes all writes through one goroutine.  The ledger is
// append-mostly and the database is opened with a single connection, so
// funneling every transaction through here keeps writers from ever seeing
// SQLITE_BUSY from each other.
type Worker struct {
	db   *sql.DB
	jobs chan writeJob
	done chan struct{}
}

type writeJob struct {
	ctx    context.Context
	fn     TxFn
	result chan error
}

func NewWorker(db *sql.DB) *Worker {
	w := &Worker{
		db:   db,
		jobs: make(chan writeJob, 256),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

// Close drains the queue and stops the goroutine.  Pending jobs still run.
func (w *Worker) Close() {
	close(w.jobs)
	<-w.done
}

// Do executes fn in its own transaction on the writer goroutine and returns
// the commit result.  If ctx expires while the job is queued or running, Do
// returns early; the transaction itself always runs to completion and its
// result is discarded into the buffered channel.
func (w *Worker) Do(ctx context.Context, fn TxFn) error {
	j := writeJob{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) run() {
	defer close(w.done)
	for j := range w.jobs {
		j.result <- w.runTx(j.ctx, j.fn)
	}
}

func (w *Worker) runTx(ctx context.Context, fn TxFn) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
