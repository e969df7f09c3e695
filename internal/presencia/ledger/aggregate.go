package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

// DayTotal is the worked time for one calendar day, keyed by the day the
// pairing's ARRIVAL fell on.
type DayTotal struct {
	Date    string `json:"date"` // DD/MM/YYYY
	Seconds int64  `json:"seconds"`
}

// MonthReport is one employee's per-day breakdown for a month.
type MonthReport struct {
	Employee string     `json:"employee"`
	Month    string     `json:"month"` // MM/YYYY
	Days     []DayTotal `json:"days"`
	Total    int64      `json:"total_seconds"`
}

// EmployeeTotal is one line of the global monthly summary.
type EmployeeTotal struct {
	Employee string `json:"employee"`
	Seconds  int64  `json:"seconds"`
}

// Aggregator sums worked seconds by pairing each employee's ARRIVAL and
// DEPARTURE events chronologically.
//
// The pairing policy is inherited from the ledger's whole history and must
// stay put: a second ARRIVAL overwrites an unconsumed pending one (the first
// contributes zero), a DEPARTURE with no pending ARRIVAL is ignored, and a
// trailing pending ARRIVAL earns no partial credit.  Employees are always
// paired independently; a movement from one employee never pairs with
// another's.
type Aggregator struct {
	events *EventReader
	loc    *time.Location
}

func NewAggregator(events *EventReader, loc *time.Location) *Aggregator {
	return &Aggregator{events: events, loc: loc}
}

// WorkedByDay returns the employee's per-day worked seconds for a month
// (MM/YYYY), or for the whole ledger when month is empty.  Days appear in
// chronological order; days with no completed pairing are absent.
func (a *Aggregator) WorkedByDay(ctx context.Context, employee, month string) (MonthReport, error) {
	evs, err := a.events.Events(ctx)
	if err != nil {
		return MonthReport{Employee: employee, Month: month}, fmt.Errorf("read events: %w", err)
	}

	ordered := filterMonth(chronological(evs, employee, a.loc), month)
	buckets, order := pairSeconds(ordered)

	rep := MonthReport{Employee: employee, Month: month}
	for _, day := range order {
		secs := buckets[day]
		rep.Days = append(rep.Days, DayTotal{Date: day, Seconds: secs})
		rep.Total += secs
	}
	return rep, nil
}

// MonthlySummary runs the per-day pairing independently for every employee
// present in the month and returns their totals, in order of first
// appearance in the ledger.
func (a *Aggregator) MonthlySummary(ctx context.Context, month string) ([]EmployeeTotal, error) {
	evs, err := a.events.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	var names []string
	seen := make(map[string]bool)
	for _, ev := range evs {
		if !seen[ev.Employee] {
			seen[ev.Employee] = true
			names = append(names, ev.Employee)
		}
	}

	var out []EmployeeTotal
	for _, name := range names {
		ordered := filterMonth(chronological(evs, name, a.loc), month)
		if len(ordered) == 0 {
			continue
		}
		buckets, _ := pairSeconds(ordered)
		var total int64
		for _, secs := range buckets {
			total += secs
		}
		out = append(out, EmployeeTotal{Employee: name, Seconds: total})
	}
	return out, nil
}

// Months lists the distinct MM/YYYY values present in the ledger, newest
// first (the report picker).
func (a *Aggregator) Months(ctx context.Context) ([]string, error) {
	evs, err := a.events.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	seen := make(map[string]time.Time)
	for _, ev := range evs {
		t, err := time.Parse(DateLayout, ev.Date)
		if err != nil {
			continue
		}
		seen[t.Format(MonthLayout)] = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return seen[months[i]].After(seen[months[j]]) })
	return months, nil
}

// FormatHours renders seconds as "XhYm", truncating: 3599 leftover seconds
// is still 59 minutes, never rounded up to the next hour.
func FormatHours(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// pairSeconds runs the pending-arrival scan over an employee's ordered
// events.  It returns seconds bucketed by the pending ARRIVAL's calendar day
// plus the bucket keys in order of first contribution.
func pairSeconds(ordered []stamped) (map[string]int64, []string) {
	buckets := make(map[string]int64)
	var order []string

	var pending *stamped
	for i := range ordered {
		s := ordered[i]
		switch s.ev.Kind {
		case types.KindArrival:
			// overwrites any unconsumed arrival: that one is lost
			pending = &ordered[i]
		case types.KindDeparture:
			if pending == nil {
				continue // departure with nothing to close
			}
			day := pending.at.Format(DateLayout)
			if _, ok := buckets[day]; !ok {
				order = append(order, day)
			}
			buckets[day] += int64(s.at.Sub(pending.at) / time.Second)
			pending = nil
		}
	}
	// a still-open pending arrival contributes nothing
	return buckets, order
}

func filterMonth(ordered []stamped, month string) []stamped {
	if month == "" {
		return ordered
	}
	var out []stamped
	for _, s := range ordered {
		if s.at.Format(MonthLayout) == month {
			out = append(out, s)
		}
	}
	return out
}
