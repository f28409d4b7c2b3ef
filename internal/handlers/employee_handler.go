package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock/internal/services"
)

// EmployeeHandler serves the roster and the derived presence status.
type EmployeeHandler struct {
	store    services.RecordStorer
	statuses services.StatusProjector
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(store services.RecordStorer, statuses services.StatusProjector) *EmployeeHandler {
	return &EmployeeHandler{store: store, statuses: statuses}
}

// ListEmployees returns the full roster.
// @Summary     List employees
// @Description Get every employee ordered by ID, without status
// @Tags        employees
// @Produce     json
// @Success     200 {array}  models.Employee "Employees"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.store.ListEmployees()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// GetEmployee returns a single employee.
// @Summary     Get employee by ID
// @Tags        employees
// @Produce     json
// @Param       id  path     int true "Employee ID"
// @Success     200 {object} models.Employee "Employee"
// @Failure     400 {object} ErrorResponse "Invalid employee ID"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.store.GetEmployee(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// ListStatuses returns every employee with their current status.
// @Summary     Current status of all employees
// @Description current_status and last_event come from each employee's most recent log, or null when none exists
// @Tags        status
// @Produce     json
// @Success     200 {array}  models.EmployeeStatus "Employee statuses"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /status [get]
func (h *EmployeeHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.statuses.CurrentStatuses()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// GetStatus returns the current status of one employee.
// @Summary     Current status of one employee
// @Tags        status
// @Produce     json
// @Param       id  path     int true "Employee ID"
// @Success     200 {object} models.EmployeeStatus "Employee status"
// @Failure     400 {object} ErrorResponse "Invalid employee ID"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/status [get]
func (h *EmployeeHandler) GetStatus(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.statuses.StatusFor(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetSummary returns presence counts.
// @Summary     Presence summary
// @Tags        status
// @Produce     json
// @Success     200 {object} services.StatusSummary "Counts by status"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /status/summary [get]
func (h *EmployeeHandler) GetSummary(c *gin.Context) {
	summary, err := h.statuses.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
