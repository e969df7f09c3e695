package ledger_test

import (
	"io"
	"log"

	"github.com/presencia-app/presencia/internal/presencia/ledger"
	"github.com/presencia-app/presencia/internal/presencia/store"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newReader builds an uncached reader so tests observe the store directly.
func newReader(st store.EventStore) *ledger.EventReader {
	return ledger.NewEventReader(st, discardLogger(), ledger.ReaderOptions{})
}

func ev(date, tm, employee, kind string) types.Event {
	return types.Event{
		Date:     date,
		Time:     tm,
		Employee: employee,
		Kind:     kind,
		Device:   "test-device",
	}
}

// signedEv is ev with a valid signature from signer.
func signedEv(signer *ledger.Signer, date, tm, employee, kind string) types.Event {
	e := ev(date, tm, employee, kind)
	e.Signature = signer.Sign(e.Date, e.Time, e.Employee, e.Kind, e.Device)
	return e
}
