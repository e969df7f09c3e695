package types

// Kind values are stored exactly as the historical sheet wrote them, so the
// ledger stays readable alongside rows created by earlier tooling.
const (
	KindArrival   = "ENTRADA"
	KindDeparture = "SALIDA"
)

// Event is one clock movement as persisted in the events table.  All fields
// are kept in their stored textual form; parsing happens at the point of use
// so a malformed row never poisons the rest of the ledger.
type Event struct {
	Date      string `json:"date"`      // DD/MM/YYYY
	Time      string `json:"time"`      // HH:MM:SS
	Employee  string `json:"employee"`  // display name (join key, see Employee)
	Kind      string `json:"kind"`      // ENTRADA | SALIDA
	Device    string `json:"device"`    // free-text provenance (user agent etc.)
	Signature string `json:"signature"` // hex digest; empty = manually inserted row
}

// Employee maps an opaque clock-in token to a display name.  Tokens are
// unique; names are not. Two employees sharing a name are indistinguishable
// in the ledger, which only carries the name.
type Employee struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Calendar block scopes.
const (
	ScopeGlobal     = "GLOBAL"
	ScopeIndividual = "INDIVIDUAL"
)

// ScopeAllEmployees is the employee column sentinel on GLOBAL rows.
const ScopeAllEmployees = "*"

// CalendarBlock is one blacked-out calendar day.  Admin-selected ranges are
// expanded into one row per day at creation time; no range is ever stored.
type CalendarBlock struct {
	Date     string `json:"date"`  // DD/MM/YYYY
	Scope    string `json:"scope"` // GLOBAL | INDIVIDUAL
	Employee string `json:"employee"`
	Reason   string `json:"reason"`
}

// AppliesTo reports whether the block covers the given employee.
func (b CalendarBlock) AppliesTo(employee string) bool {
	if b.Scope == ScopeGlobal {
		return true
	}
	return b.Employee == employee
}
