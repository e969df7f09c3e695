package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

// Stored textual layouts.  The ledger predates this server and every row in
// it uses these exact forms; all parsing and all new rows go through them.
const (
	DateLayout  = "02/01/2006"
	TimeLayout  = "15:04:05"
	MonthLayout = "01/2006"
)

// ParseStamp combines an event's date and time columns into a single instant
// in the given zone.
func ParseStamp(date, tm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+tm, loc)
}

// MonthOf extracts the MM/YYYY month key from a stored date.
func MonthOf(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return t.Format(MonthLayout), nil
}

// stamped is an event joined with its parsed instant.
type stamped struct {
	ev types.Event
	at time.Time
}

// chronological returns the employee's events in ascending timestamp order.
// Rows whose date or time does not parse are dropped, not treated as errors:
// one bad row must never abort state or hours computation for the rest of the
// ledger.  The sort is stable so rows stamped on the same second keep their
// storage order (the table carries no finer ordering key).
func chronological(events []types.Event, employee string, loc *time.Location) []stamped {
	var out []stamped
	for _, ev := range events {
		if ev.Employee != employee {
			continue
		}
		at, err := ParseStamp(ev.Date, ev.Time, loc)
		if err != nil {
			continue
		}
		out = append(out, stamped{ev: ev, at: at})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at.Before(out[j].at) })
	return out
}
