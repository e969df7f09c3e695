package types

// ClockRequest is the employee-facing clock action.
type ClockRequest struct {
	Token  string `json:"token"`
	Kind   string `json:"kind"` // ENTRADA | SALIDA
	Device string `json:"device,omitempty"`
}

// ClockResponse confirms a recorded movement.
type ClockResponse struct {
	OK       bool   `json:"ok"`
	Employee string `json:"employee"`
	Kind     string `json:"kind"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason,omitempty"` // populated on denial
}

// SuggestResponse tells the clock page which button to present.
type SuggestResponse struct {
	Employee  string `json:"employee"`
	ClockedIn bool   `json:"clocked_in"`
	NextKind  string `json:"next_kind"` // ENTRADA | SALIDA
}

// NewEmployeeRequest creates an employee and mints a clock-in token.
type NewEmployeeRequest struct {
	Name string `json:"name"`
}

// NewEmployeeResponse returns the minted token plus the shareable link.
type NewEmployeeResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Link  string `json:"link,omitempty"`
}

// CalendarRange is the admin form for blacking out a span of days; it is
// expanded into per-day CalendarBlock rows before anything is stored.
type CalendarRange struct {
	From     string `json:"from" yaml:"from"` // DD/MM/YYYY inclusive
	To       string `json:"to" yaml:"to"`     // DD/MM/YYYY inclusive
	Scope    string `json:"scope" yaml:"scope"`
	Employee string `json:"employee,omitempty" yaml:"employee,omitempty"`
	Reason   string `json:"reason" yaml:"reason"`
}
