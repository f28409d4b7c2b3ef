package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "timeclock/internal/errors"
	"timeclock/internal/models"
	"timeclock/internal/pagination"
	"timeclock/internal/services"
)

// LogHandler serves the log feed and accepts check-ins.
type LogHandler struct {
	store   services.RecordStorer
	checkIn services.CheckInServicer
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(store services.RecordStorer, checkIn services.CheckInServicer) *LogHandler {
	return &LogHandler{store: store, checkIn: checkIn}
}

// CheckRequest represents the request payload for a check-in or check-out.
type CheckRequest struct {
	EmployeeID uint           `json:"employeeId" binding:"required" example:"1"`
	Type       models.LogType `json:"type" binding:"required,log_type" example:"IN"`
}

// CheckResponse is returned after a log has been recorded.
type CheckResponse struct {
	Success bool                     `json:"success"`
	Log     *models.EnrichedLogEntry `json:"log"`
}

// ListLogs returns the most recent log entries, newest first.
// @Summary     Recent logs
// @Description Up to 50 enriched log entries ordered by timestamp then ID, descending
// @Tags        logs
// @Produce     json
// @Param       limit       query int false "Number of entries (1-50, default 50)"
// @Param       employee_id query int false "Only entries for this employee"
// @Success     200 {array}  models.EnrichedLogEntry "Recent logs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	var window pagination.LimitRequest
	if err := c.ShouldBindQuery(&window); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	window.Defaults()

	filter := services.LogFilter{Limit: window.Limit}
	if v := c.Query("employee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil || id == 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "employee_id must be a positive integer"))
			return
		}
		employeeID := uint(id)
		filter.EmployeeID = &employeeID
	}

	entries, err := h.store.RecentLogs(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetLog returns a single enriched log entry.
// @Summary     Get log by ID
// @Tags        logs
// @Produce     json
// @Param       id  path     int true "Log ID"
// @Success     200 {object} models.EnrichedLogEntry "Log entry"
// @Failure     400 {object} ErrorResponse "Invalid log ID"
// @Failure     404 {object} ErrorResponse "Log entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs/{id} [get]
func (h *LogHandler) GetLog(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.store.GetLog(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Check records a check-in or check-out and pushes it to live subscribers.
// @Summary     Check in or out
// @Description Appends an IN or OUT log for the employee. Consecutive events of the same type are accepted.
// @Tags        logs
// @Accept      json
// @Produce     json
// @Param       request body     CheckRequest true "Check details"
// @Success     200     {object} CheckResponse "Log recorded"
// @Failure     400     {object} ErrorResponse "Missing or invalid fields"
// @Failure     404     {object} ErrorResponse "Employee not found"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /check [post]
func (h *LogHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	entry, err := h.checkIn.CheckInOrOut(req.EmployeeID, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckResponse{Success: true, Log: entry})
}
