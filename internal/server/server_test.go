package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"
	"gorm.io/gorm"

	"timeclock/internal/database"
	"timeclock/internal/handlers"
	"timeclock/internal/logger"
	"timeclock/internal/models"
	"timeclock/internal/testutil"
	"timeclock/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// testApp holds a fully wired application over an isolated database.
type testApp struct {
	*App
	DB     *gorm.DB
	Server *httptest.Server
}

// setupApp seeds an isolated in-memory SQLite and serves the router over a
// real listener so WebSocket clients can connect.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	if _, err := database.Seed(db); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	app := New(db, Options{
		AllowedOrigin: "*",
		Stream:        handlers.StreamConfig{BufferSize: 16, WriteTimeout: time.Second},
	})
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)

	return &testApp{App: app, DB: db, Server: srv}
}

// request makes an HTTP request to the router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// subscribe opens a push channel and waits until the broadcaster has
// registered it.
func (app *testApp) subscribe(t *testing.T) *websocket.Conn {
	t.Helper()

	want := app.Broadcaster.Count() + 1
	url := "ws" + strings.TrimPrefix(app.Server.URL, "http") + "/ws"
	ws, err := websocket.Dial(url, "", app.Server.URL)
	if err != nil {
		t.Fatalf("failed to dial push channel: %v", err)
	}
	app.waitForSubscribers(t, want)
	return ws
}

func (app *testApp) waitForSubscribers(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for app.Broadcaster.Count() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers, have %d", want, app.Broadcaster.Count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type pushedEvent struct {
	Type string                  `json:"type"`
	Data models.EnrichedLogEntry `json:"data"`
}

func receiveEvent(t *testing.T, ws *websocket.Conn) pushedEvent {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame string
	if err := websocket.Message.Receive(ws, &frame); err != nil {
		t.Fatalf("failed to receive frame: %v", err)
	}
	var event pushedEvent
	if err := json.Unmarshal([]byte(frame), &event); err != nil {
		t.Fatalf("frame is not an event: %v\nframe: %s", err, frame)
	}
	return event
}

func expectNoFrame(t *testing.T, ws *websocket.Conn) {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var frame string
	if err := websocket.Message.Receive(ws, &frame); err == nil {
		t.Fatalf("expected no frame, got %s", frame)
	}
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseStatuses(t *testing.T, rec *httptest.ResponseRecorder) []models.EmployeeStatus {
	t.Helper()
	var statuses []models.EmployeeStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("failed to parse statuses: %v\nbody: %s", err, rec.Body.String())
	}
	return statuses
}

func parseLogs(t *testing.T, rec *httptest.ResponseRecorder) []models.EnrichedLogEntry {
	t.Helper()
	var entries []models.EnrichedLogEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to parse logs: %v\nbody: %s", err, rec.Body.String())
	}
	return entries
}

func TestCheckInFlow_SeededEmployee(t *testing.T) {
	app := setupApp(t)
	ws := app.subscribe(t)
	defer ws.Close()

	// Step 1: nobody has a status yet
	rec := app.request("GET", "/api/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	before := parseStatuses(t, rec)
	if len(before) != len(database.SampleEmployees) {
		t.Fatalf("expected %d employees, got %d", len(database.SampleEmployees), len(before))
	}
	for _, s := range before {
		if s.CurrentStatus != nil || s.LastEvent != nil {
			t.Errorf("expected null status for %s, got %v", s.Name, s.CurrentStatus)
		}
	}

	// Step 2: Somchai checks in
	rec = app.request("POST", "/api/check", `{"employeeId":1,"type":"IN"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["success"] != true {
		t.Fatalf("expected success, got %v", result)
	}
	logObj := result["log"].(map[string]interface{})
	if logObj["employee_name"] != "Somchai Jaidee" || logObj["department"] != "Engineering" || logObj["type"] != "IN" {
		t.Errorf("unexpected log %v", logObj)
	}
	logID := logObj["id"].(float64)

	// Step 3: the subscriber sees exactly that entry
	event := receiveEvent(t, ws)
	if event.Type != "NEW_LOG" {
		t.Errorf("expected NEW_LOG, got %s", event.Type)
	}
	if float64(event.Data.ID) != logID || event.Data.EmployeeName != "Somchai Jaidee" || event.Data.Type != models.LogTypeIn {
		t.Errorf("unexpected pushed entry %+v", event.Data)
	}

	// Step 4: status reflects the new entry
	rec = app.request("GET", "/api/status", "")
	after := parseStatuses(t, rec)
	somchai := after[0]
	if somchai.ID != 1 || somchai.CurrentStatus == nil || *somchai.CurrentStatus != models.LogTypeIn {
		t.Fatalf("expected Somchai IN, got %+v", somchai)
	}
	if somchai.LastEvent == nil || !somchai.LastEvent.Equal(event.Data.Timestamp) {
		t.Errorf("expected last_event %v, got %v", event.Data.Timestamp, somchai.LastEvent)
	}
	for _, s := range after[1:] {
		if s.CurrentStatus != nil {
			t.Errorf("expected %s to stay unknown", s.Name)
		}
	}

	// Step 5: the feed leads with the new entry
	rec = app.request("GET", "/api/logs", "")
	entries := parseLogs(t, rec)
	if len(entries) != 1 || float64(entries[0].ID) != logID {
		t.Errorf("expected feed to hold the new entry, got %+v", entries)
	}

	// Step 6: checking out flips the status
	rec = app.request("POST", "/api/check", `{"employeeId":1,"type":"OUT"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	// the next frame is the OUT, so the IN was pushed exactly once
	if e := receiveEvent(t, ws); e.Data.Type != models.LogTypeOut {
		t.Errorf("expected OUT event, got %s", e.Data.Type)
	}
	rec = app.request("GET", "/api/employees/1/status", "")
	if parseJSON(t, rec)["current_status"] != "OUT" {
		t.Errorf("expected OUT, got %s", rec.Body.String())
	}
}

func TestCheckIn_DuplicateStatesAccepted(t *testing.T) {
	app := setupApp(t)

	for i := 0; i < 2; i++ {
		rec := app.request("POST", "/api/check", `{"employeeId":2,"type":"IN"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if n := testutil.CountLogRows(t, app.DB); n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
}

func TestCheckIn_RejectedRequestsWriteNothing(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"missing type", `{"employeeId":1}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing employee", `{"type":"OUT"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid type", `{"employeeId":1,"type":"BREAK"}`, http.StatusBadRequest, "INVALID_LOG_TYPE"},
		{"unknown employee", `{"employeeId":9999,"type":"IN"}`, http.StatusNotFound, "EMPLOYEE_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(t)
			ws := app.subscribe(t)
			defer ws.Close()

			rec := app.request("POST", "/api/check", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			result := parseJSON(t, rec)
			if result["code"] != tt.wantCode {
				t.Errorf("expected code %s, got %v", tt.wantCode, result["code"])
			}
			if msg, _ := result["error"].(string); msg == "" {
				t.Error("expected an error message")
			}

			testutil.AssertLogRows(t, app.DB, 0)
			expectNoFrame(t, ws)
		})
	}
}

func TestLogs_WindowOrderingAndIdempotence(t *testing.T) {
	app := setupApp(t)

	base := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		logType := models.LogTypeIn
		if i%2 == 1 {
			logType = models.LogTypeOut
		}
		// pairs share a timestamp so ID breaks the tie
		testutil.CreateTestLog(t, app.DB, uint(i%5)+1, logType, base.Add(time.Duration(i/2)*time.Minute))
	}

	rec := app.request("GET", "/api/logs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	first := rec.Body.String()
	entries := parseLogs(t, rec)
	if len(entries) != 50 {
		t.Fatalf("expected 50 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		descending := prev.Timestamp.After(cur.Timestamp) ||
			(prev.Timestamp.Equal(cur.Timestamp) && prev.ID > cur.ID)
		if !descending {
			t.Fatalf("entries %d and %d out of order: %+v then %+v", i-1, i, prev, cur)
		}
	}
	if entries[0].ID != 60 {
		t.Errorf("expected newest entry 60 first, got %d", entries[0].ID)
	}

	if again := app.request("GET", "/api/logs", "").Body.String(); again != first {
		t.Error("expected repeated reads to return identical results")
	}

	rec = app.request("GET", "/api/logs?limit=5&employee_id=3", "")
	filtered := parseLogs(t, rec)
	if len(filtered) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(filtered))
	}
	for _, e := range filtered {
		if e.EmployeeID != 3 || e.EmployeeName != "Anan Srisuk" {
			t.Errorf("unexpected entry in filtered feed: %+v", e)
		}
	}
}

func TestPushChannel_ReconnectGetsNoBacklog(t *testing.T) {
	app := setupApp(t)

	first := app.subscribe(t)
	_ = first.Close()
	app.waitForSubscribers(t, 0)

	// Events published while disconnected are not replayed.
	for _, body := range []string{`{"employeeId":4,"type":"IN"}`, `{"employeeId":5,"type":"IN"}`} {
		if rec := app.request("POST", "/api/check", body); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}

	second := app.subscribe(t)
	defer second.Close()

	// A re-fetch shows the state that was missed.
	statuses := parseStatuses(t, app.request("GET", "/api/status", ""))
	for _, s := range statuses {
		wantIn := s.ID == 4 || s.ID == 5
		if wantIn != (s.CurrentStatus != nil && *s.CurrentStatus == models.LogTypeIn) {
			t.Errorf("unexpected status for employee %d: %v", s.ID, s.CurrentStatus)
		}
	}

	// Live delivery resumes and the first frame is the new event.
	if rec := app.request("POST", "/api/check", `{"employeeId":4,"type":"OUT"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if e := receiveEvent(t, second); e.Data.EmployeeID != 4 || e.Data.Type != models.LogTypeOut {
		t.Errorf("unexpected event %+v", e.Data)
	}
}

func TestPushChannel_FanOut(t *testing.T) {
	app := setupApp(t)

	clients := make([]*websocket.Conn, 3)
	for i := range clients {
		clients[i] = app.subscribe(t)
		defer clients[i].Close()
	}

	rec := app.request("POST", "/api/check", `{"employeeId":3,"type":"IN"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for i, ws := range clients {
		if e := receiveEvent(t, ws); e.Data.EmployeeName != "Anan Srisuk" {
			t.Errorf("client %d: unexpected event %+v", i, e.Data)
		}
	}
}

func TestReadEndpoints(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/employees", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var employees []models.Employee
	if err := json.Unmarshal(rec.Body.Bytes(), &employees); err != nil {
		t.Fatalf("failed to parse employees: %v", err)
	}
	if len(employees) != 5 || employees[0].Name != "Somchai Jaidee" {
		t.Errorf("unexpected roster %+v", employees)
	}

	rec = app.request("GET", "/api/employees/2", "")
	if rec.Code != http.StatusOK || parseJSON(t, rec)["name"] != "Suda Rakthai" {
		t.Errorf("unexpected employee response %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/employees/9999", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	app.request("POST", "/api/check", `{"employeeId":1,"type":"IN"}`)
	app.request("POST", "/api/check", `{"employeeId":2,"type":"OUT"}`)
	summary := parseJSON(t, app.request("GET", "/api/status/summary", ""))
	want := map[string]float64{"total": 5, "in": 1, "out": 1, "unknown": 3}
	for key, v := range want {
		if summary[key] != v {
			t.Errorf("expected %s=%v, got %v", key, v, summary[key])
		}
	}
}

func TestHealthReportsSubscribers(t *testing.T) {
	app := setupApp(t)
	ws := app.subscribe(t)
	defer ws.Close()

	result := parseJSON(t, app.request("GET", "/api/health", ""))
	if result["status"] != "ok" {
		t.Errorf("expected ok, got %v", result["status"])
	}
	if result["subscribers"] != float64(1) {
		t.Errorf("expected 1 subscriber, got %v", result["subscribers"])
	}
}

func TestCORSPreflight(t *testing.T) {
	app := setupApp(t)

	rec := app.request("OPTIONS", "/api/check", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}

func TestSwaggerDoc(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := parseJSON(t, rec)
	paths, ok := doc["paths"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected paths in swagger doc")
	}
	for _, p := range []string{"/check", "/logs", "/logs/{id}", "/status", "/employees"} {
		if _, ok := paths[p]; !ok {
			t.Errorf("expected %s in swagger doc", p)
		}
	}

	// The push channel is served at /ws, not under the /api base path.
	if _, ok := paths["/ws"]; ok {
		t.Error("expected /ws to stay out of the /api paths")
	}
	info, _ := doc["info"].(map[string]interface{})
	if desc, _ := info["description"].(string); !strings.Contains(desc, "/ws") || !strings.Contains(desc, "NEW_LOG") {
		t.Errorf("expected push channel in description, got %q", desc)
	}
}

func TestInstancesDoNotShareSubscribers(t *testing.T) {
	a := setupApp(t)
	b := setupApp(t)

	ws := a.subscribe(t)
	defer ws.Close()

	if b.Broadcaster.Count() != 0 {
		t.Errorf("expected second instance to have no subscribers, got %d", b.Broadcaster.Count())
	}
	rec := b.request("POST", "/api/check", fmt.Sprintf(`{"employeeId":%d,"type":"IN"}`, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	expectNoFrame(t, ws)
}

func TestGetLogByID(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/check", `{"employeeId":5,"type":"IN"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	logID := parseJSON(t, rec)["log"].(map[string]interface{})["id"].(float64)

	rec = app.request("GET", fmt.Sprintf("/api/logs/%.0f", logID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	entry := parseJSON(t, rec)
	if entry["employee_name"] != "Prasert Wongsawat" || entry["type"] != "IN" {
		t.Errorf("unexpected entry %v", entry)
	}

	rec = app.request("GET", "/api/logs/9999", "")
	if rec.Code != http.StatusNotFound || parseJSON(t, rec)["code"] != "LOG_NOT_FOUND" {
		t.Errorf("expected 404 LOG_NOT_FOUND, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/api/nope", "/api/employees/1/history"} {
		rec := app.request("GET", path, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		result := parseJSON(t, rec)
		if result["code"] != "NOT_FOUND" || result["error"] != "Resource not found" {
			t.Errorf("%s: unexpected body %v", path, result)
		}
	}
}
