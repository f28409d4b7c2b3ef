package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"timeclock/internal/logger"
	"timeclock/internal/models"
	"timeclock/internal/services"
	"timeclock/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if _, ok := result["error"].(string); !ok {
		t.Fatalf("expected error message in response, got: %v", result)
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}

// --- mock record store ---

type mockRecordStore struct {
	listEmployeesFn  func() ([]models.Employee, error)
	getEmployeeFn    func(id uint) (*models.Employee, error)
	employeeExistsFn func(id uint) (bool, error)
	appendLogFn      func(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error)
	getLogFn         func(id uint) (*models.EnrichedLogEntry, error)
	recentLogsFn     func(filter services.LogFilter) ([]models.EnrichedLogEntry, error)
	countLogsFn      func(employeeID *uint) (int64, error)
}

func (m *mockRecordStore) ListEmployees() ([]models.Employee, error) {
	if m.listEmployeesFn != nil {
		return m.listEmployeesFn()
	}
	return []models.Employee{}, nil
}

func (m *mockRecordStore) GetEmployee(id uint) (*models.Employee, error) {
	if m.getEmployeeFn != nil {
		return m.getEmployeeFn(id)
	}
	return &models.Employee{Base: models.Base{ID: id}}, nil
}

func (m *mockRecordStore) EmployeeExists(id uint) (bool, error) {
	if m.employeeExistsFn != nil {
		return m.employeeExistsFn(id)
	}
	return true, nil
}

func (m *mockRecordStore) AppendLog(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error) {
	if m.appendLogFn != nil {
		return m.appendLogFn(employeeID, logType)
	}
	return &models.EnrichedLogEntry{EmployeeID: employeeID, Type: logType}, nil
}

func (m *mockRecordStore) GetLog(id uint) (*models.EnrichedLogEntry, error) {
	if m.getLogFn != nil {
		return m.getLogFn(id)
	}
	return &models.EnrichedLogEntry{ID: id}, nil
}

func (m *mockRecordStore) RecentLogs(filter services.LogFilter) ([]models.EnrichedLogEntry, error) {
	if m.recentLogsFn != nil {
		return m.recentLogsFn(filter)
	}
	return []models.EnrichedLogEntry{}, nil
}

func (m *mockRecordStore) CountLogs(employeeID *uint) (int64, error) {
	if m.countLogsFn != nil {
		return m.countLogsFn(employeeID)
	}
	return 0, nil
}

// --- mock status projector ---

type mockStatusProjector struct {
	currentStatusesFn func() ([]models.EmployeeStatus, error)
	statusForFn       func(employeeID uint) (*models.EmployeeStatus, error)
	summaryFn         func() (*services.StatusSummary, error)
}

func (m *mockStatusProjector) CurrentStatuses() ([]models.EmployeeStatus, error) {
	if m.currentStatusesFn != nil {
		return m.currentStatusesFn()
	}
	return []models.EmployeeStatus{}, nil
}

func (m *mockStatusProjector) StatusFor(employeeID uint) (*models.EmployeeStatus, error) {
	if m.statusForFn != nil {
		return m.statusForFn(employeeID)
	}
	return &models.EmployeeStatus{ID: employeeID}, nil
}

func (m *mockStatusProjector) Summary() (*services.StatusSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn()
	}
	return &services.StatusSummary{}, nil
}

// --- mock check-in service ---

type mockCheckInService struct {
	checkInOrOutFn func(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error)
	calls          int
}

func (m *mockCheckInService) CheckInOrOut(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error) {
	m.calls++
	if m.checkInOrOutFn != nil {
		return m.checkInOrOutFn(employeeID, logType)
	}
	return &models.EnrichedLogEntry{ID: 1, EmployeeID: employeeID, Type: logType}, nil
}

// verify interface compliance
var (
	_ services.RecordStorer    = (*mockRecordStore)(nil)
	_ services.StatusProjector = (*mockStatusProjector)(nil)
	_ services.CheckInServicer = (*mockCheckInService)(nil)
)
