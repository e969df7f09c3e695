package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/presencia-app/presencia/internal/httpapi"
	"github.com/presencia-app/presencia/internal/presencia/ledger"
	"github.com/presencia-app/presencia/internal/presencia/store/memory"
	"github.com/presencia-app/presencia/internal/presencia/types"
)

const (
	testAdminSecret = "test-admin-secret"
	anaToken        = "token-ana"
)

type fixture struct {
	events   *memory.EventStore
	calendar *memory.CalendarStore
	ts       *httptest.Server
}

// newTestServer wires up the full dependency graph using in-memory stores
// and returns an httptest.Server whose URL can be hit with a plain http.Client.
func newTestServer(t *testing.T) *fixture {
	t.Helper()

	events := memory.NewEventStore()
	calendar := memory.NewCalendarStore()
	employees := memory.NewEmployeeStore(types.Employee{Token: anaToken, Name: "Ana"})

	logger := log.New(io.Discard, "", 0)
	signer := ledger.NewSigner("http-test-secret")
	reader := ledger.NewEventReader(events, logger, ledger.ReaderOptions{TTL: time.Hour})
	gate := ledger.NewGate(calendar, logger)
	resolver := ledger.NewResolver(reader, time.UTC)

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:      logger,
		Addr:        ":0",
		AdminSecret: testAdminSecret,
		Clerk:       ledger.NewClerk(employees, events, reader, gate, resolver, signer, time.UTC),
		Aggregator:  ledger.NewAggregator(reader, time.UTC),
		Auditor:     ledger.NewAuditor(reader, signer),
		Roster:      ledger.NewRoster(employees, "https://reloj.example.com"),
		Planner:     ledger.NewPlanner(calendar),
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{events: events, calendar: calendar, ts: ts}
}

func postJSON(t *testing.T, url string, body any, headers map[string]string) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func adminGet(t *testing.T, url string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Admin-Secret", testAdminSecret)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// ── Clock flow ───────────────────────────────────────────────────────────────

func TestClock_OK(t *testing.T) {
	f := newTestServer(t)

	resp := postJSON(t, f.ts.URL+"/v1/clock", types.ClockRequest{
		Token: anaToken, Kind: types.KindArrival,
	}, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var cr types.ClockResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !cr.OK || cr.Employee != "Ana" || cr.Kind != types.KindArrival {
		t.Fatalf("unexpected response: %+v", cr)
	}
	if cr.Date == "" || cr.Time == "" {
		t.Fatal("expected the recorded date and time in the confirmation")
	}

	if got := len(f.events.Events()); got != 1 {
		t.Fatalf("expected 1 stored event, got %d", got)
	}
}

func TestClock_UnknownToken(t *testing.T) {
	f := newTestServer(t)

	resp := postJSON(t, f.ts.URL+"/v1/clock", types.ClockRequest{
		Token: "nope", Kind: types.KindArrival,
	}, nil)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestClock_BlackoutDayIsForbidden(t *testing.T) {
	f := newTestServer(t)

	today := time.Now().UTC().Format(ledger.DateLayout)
	f.calendar.AppendBlocks(nil, []types.CalendarBlock{
		{Date: today, Scope: types.ScopeGlobal, Employee: types.ScopeAllEmployees, Reason: "Festivo"},
	})

	resp := postJSON(t, f.ts.URL+"/v1/clock", types.ClockRequest{
		Token: anaToken, Kind: types.KindArrival,
	}, nil)

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	var cr types.ClockResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if cr.OK || cr.Reason != "Festivo" {
		t.Fatalf("expected denial with reason Festivo, got %+v", cr)
	}
	if got := len(f.events.Events()); got != 0 {
		t.Fatalf("denied clock must not append, got %d events", got)
	}
}

func TestSuggest_FlipsAfterClockIn(t *testing.T) {
	f := newTestServer(t)

	get := func() types.SuggestResponse {
		resp, err := http.Get(f.ts.URL + "/v1/clock?token=" + anaToken)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var sr types.SuggestResponse
		if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return sr
	}

	if sr := get(); sr.NextKind != types.KindArrival {
		t.Fatalf("expected ENTRADA suggestion, got %+v", sr)
	}

	postJSON(t, f.ts.URL+"/v1/clock", types.ClockRequest{Token: anaToken, Kind: types.KindArrival}, nil)

	if sr := get(); !sr.ClockedIn || sr.NextKind != types.KindDeparture {
		t.Fatalf("expected SALIDA suggestion after clock-in, got %+v", sr)
	}
}

// ── Admin surface ────────────────────────────────────────────────────────────

func TestAdmin_RequiresSecret(t *testing.T) {
	f := newTestServer(t)

	resp, err := http.Get(f.ts.URL + "/v1/employees")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without the secret, got %d", resp.StatusCode)
	}

	resp2 := postJSON(t, f.ts.URL+"/v1/employees", types.NewEmployeeRequest{Name: "Berta"},
		map[string]string{"X-Admin-Secret": "wrong"})
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a wrong secret, got %d", resp2.StatusCode)
	}
}

func TestAdmin_CreateEmployeeReturnsLink(t *testing.T) {
	f := newTestServer(t)

	resp := postJSON(t, f.ts.URL+"/v1/employees", types.NewEmployeeRequest{Name: "Berta"},
		map[string]string{"X-Admin-Secret": testAdminSecret})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var er types.NewEmployeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Token == "" || er.Name != "Berta" {
		t.Fatalf("unexpected response: %+v", er)
	}
	if er.Link != "https://reloj.example.com/?token="+er.Token {
		t.Fatalf("unexpected link: %q", er.Link)
	}
}

func TestAdmin_CalendarRoundTrip(t *testing.T) {
	f := newTestServer(t)

	resp := postJSON(t, f.ts.URL+"/v1/calendar", []types.CalendarRange{
		{From: "24/12/2026", To: "26/12/2026", Scope: types.ScopeGlobal, Reason: "Navidad"},
	}, map[string]string{"X-Admin-Secret": testAdminSecret})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	list := adminGet(t, f.ts.URL+"/v1/calendar")
	var blocks []types.CalendarBlock
	if err := json.NewDecoder(list.Body).Decode(&blocks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected the range expanded to 3 rows, got %d", len(blocks))
	}
}

func TestAdmin_MonthlyReportAndAudit(t *testing.T) {
	f := newTestServer(t)

	// One full working day recorded through the public clock endpoint.
	postJSON(t, f.ts.URL+"/v1/clock", types.ClockRequest{Token: anaToken, Kind: types.KindArrival}, nil)
	postJSON(t, f.ts.URL+"/v1/clock", types.ClockRequest{Token: anaToken, Kind: types.KindDeparture}, nil)

	month := time.Now().UTC().Format(ledger.MonthLayout)

	rep := adminGet(t, f.ts.URL+"/v1/reports/monthly?month="+month+"&employee=Ana")
	if rep.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", rep.StatusCode)
	}
	var mr ledger.MonthReport
	if err := json.NewDecoder(rep.Body).Decode(&mr); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if mr.Employee != "Ana" || len(mr.Days) != 1 {
		t.Fatalf("unexpected report: %+v", mr)
	}

	aud := adminGet(t, f.ts.URL+"/v1/audit")
	var ar ledger.AuditReport
	if err := json.NewDecoder(aud.Body).Decode(&ar); err != nil {
		t.Fatalf("decode audit: %v", err)
	}
	if len(ar.Rows) != 2 || ar.Counts[ledger.ClassOK] != 2 {
		t.Fatalf("expected 2 OK rows, got %+v", ar.Counts)
	}
}
