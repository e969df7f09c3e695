package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/presencia-app/presencia/internal/presencia/ledger"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

type Dependencies struct {
	Logger      *log.Logger
	Addr        string
	AdminSecret string

	Clerk      *ledger.Clerk
	Aggregator *ledger.Aggregator
	Auditor    *ledger.Auditor
	Roster     *ledger.Roster
	Planner    *ledger.Planner
}

type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	mux        *http.ServeMux

	clerk      *ledger.Clerk
	aggregator *ledger.Aggregator
	auditor    *ledger.Auditor
	roster     *ledger.Roster
	planner    *ledger.Planner
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:     d.Logger,
		mux:        mux,
		clerk:      d.Clerk,
		aggregator: d.Aggregator,
		auditor:    d.Auditor,
		roster:     d.Roster,
		planner:    d.Planner,
	}

	mux.HandleFunc("GET /v1/clock", s.handleSuggest)
	mux.HandleFunc("POST /v1/clock", s.handleClock)

	admin := adminOnly(d.AdminSecret)
	mux.Handle("POST /v1/employees", admin(http.HandlerFunc(s.handleAddEmployee)))
	mux.Handle("GET /v1/employees", admin(http.HandlerFunc(s.handleListEmployees)))
	mux.Handle("POST /v1/calendar", admin(http.HandlerFunc(s.handleAddCalendar)))
	mux.Handle("GET /v1/calendar", admin(http.HandlerFunc(s.handleListCalendar)))
	mux.Handle("GET /v1/reports/months", admin(http.HandlerFunc(s.handleMonths)))
	mux.Handle("GET /v1/reports/monthly", admin(http.HandlerFunc(s.handleMonthly)))
	mux.Handle("GET /v1/audit", admin(http.HandlerFunc(s.handleAudit)))

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ── Employee clock flow ──────────────────────────────────────────────────────

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing_token", "token query parameter is required")
		return
	}

	resp, err := s.clerk.Suggest(r.Context(), token)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownToken) {
			writeError(w, http.StatusNotFound, "unknown_token", "token not recognized")
			return
		}
		s.logger.Printf("suggest error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	var req types.ClockRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	if req.Device == "" {
		req.Device = r.UserAgent()
	}

	resp, err := s.clerk.Clock(r.Context(), req.Token, req.Kind, req.Device)
	if err != nil {
		var blocked *ledger.BlockedDayError
		switch {
		case errors.Is(err, ledger.ErrUnknownToken):
			writeError(w, http.StatusNotFound, "unknown_token", "token not recognized")
			return
		case errors.Is(err, ledger.ErrInvalidKind):
			writeError(w, http.StatusBadRequest, "invalid_kind", err.Error())
			return
		case errors.As(err, &blocked):
			// resp carries employee/kind/reason for the denial page
			writeJSON(w, http.StatusForbidden, resp)
			return
		default:
			s.logger.Printf("clock error: %v", err)
			writeError(w, http.StatusInternalServerError, "storage_error", "could not record the movement")
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Admin: employees ─────────────────────────────────────────────────────────

func (s *Server) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	var req types.NewEmployeeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.roster.Create(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "empty_name", err.Error())
			return
		}
		s.logger.Printf("add employee error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not store the employee")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	emps, err := s.roster.List(r.Context())
	if err != nil {
		s.logger.Printf("list employees error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not read employees")
		return
	}
	writeJSON(w, http.StatusOK, emps)
}

// ── Admin: calendar ──────────────────────────────────────────────────────────

func (s *Server) handleAddCalendar(w http.ResponseWriter, r *http.Request) {
	var ranges []types.CalendarRange
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&ranges); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "expected a JSON array of ranges")
		return
	}

	added := 0
	for _, rg := range ranges {
		blocks, err := s.planner.AddRange(r.Context(), rg)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_range", err.Error())
			return
		}
		added += len(blocks)
	}

	writeJSON(w, http.StatusCreated, map[string]int{"blocks_added": added})
}

func (s *Server) handleListCalendar(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.planner.List(r.Context())
	if err != nil {
		s.logger.Printf("list calendar error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not read the calendar")
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

// ── Admin: reports & audit ───────────────────────────────────────────────────

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	months, err := s.aggregator.Months(r.Context())
	if err != nil {
		s.logger.Printf("months error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not read the ledger")
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// handleMonthly returns the per-day breakdown for one employee, or the
// per-employee totals for the whole month when no employee is given.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	employee := r.URL.Query().Get("employee")

	if employee != "" {
		rep, err := s.aggregator.WorkedByDay(r.Context(), employee, month)
		if err != nil {
			s.logger.Printf("monthly report error: %v", err)
			writeError(w, http.StatusInternalServerError, "storage_error", "could not read the ledger")
			return
		}
		writeJSON(w, http.StatusOK, rep)
		return
	}

	summary, err := s.aggregator.MonthlySummary(r.Context(), month)
	if err != nil {
		s.logger.Printf("monthly summary error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not read the ledger")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	rep, err := s.auditor.Audit(r.Context(), ledger.AuditFilter{
		Employee: r.URL.Query().Get("employee"),
		Month:    r.URL.Query().Get("month"),
	})
	if err != nil {
		// the empty report still renders; the client gets what we have
		s.logger.Printf("audit error: %v", err)
	}
	writeJSON(w, http.StatusOK, rep)
}
