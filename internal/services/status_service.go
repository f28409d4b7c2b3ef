package services

import (
	"database/sql"

	"gorm.io/gorm"

	apperrors "timeclock/internal/errors"
	"timeclock/internal/models"
)

// latestLogJoin attaches to every employee the single log with the greatest
// (timestamp, id). Employees without logs keep NULL status columns.
const latestLogJoin = `
SELECT e.id, e.name, e.department, e.role,
       l.type AS current_status, l.timestamp AS last_event
FROM employees e
LEFT JOIN logs l ON l.id = (
    SELECT l2.id FROM logs l2
    WHERE l2.employee_id = e.id
    ORDER BY l2.timestamp DESC, l2.id DESC
    LIMIT 1
)`

// statusRow mirrors one projection row before nullable columns are unwrapped.
type statusRow struct {
	ID            uint
	Name          string
	Department    string
	Role          string
	CurrentStatus sql.NullString
	LastEvent     sql.NullTime
}

func (r statusRow) toStatus() models.EmployeeStatus {
	status := models.EmployeeStatus{
		ID:         r.ID,
		Name:       r.Name,
		Department: r.Department,
		Role:       r.Role,
	}
	if r.CurrentStatus.Valid {
		logType := models.LogType(r.CurrentStatus.String)
		status.CurrentStatus = &logType
	}
	if r.LastEvent.Valid {
		lastEvent := r.LastEvent.Time.UTC()
		status.LastEvent = &lastEvent
	}
	return status
}

// statusService computes presence from the log table on every call.
type statusService struct {
	db *gorm.DB
}

// NewStatusService creates a new StatusProjector.
func NewStatusService(db *gorm.DB) StatusProjector {
	return &statusService{db: db}
}

// CurrentStatuses returns every employee, ordered by ID, with the type and
// timestamp of their most recent log.
func (s *statusService) CurrentStatuses() ([]models.EmployeeStatus, error) {
	var rows []statusRow
	if err := s.db.Raw(latestLogJoin + " ORDER BY e.id ASC").Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	statuses := make([]models.EmployeeStatus, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, row.toStatus())
	}
	return statuses, nil
}

// StatusFor returns the projection for a single employee.
func (s *statusService) StatusFor(employeeID uint) (*models.EmployeeStatus, error) {
	var rows []statusRow
	if err := s.db.Raw(latestLogJoin+" WHERE e.id = ?", employeeID).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrEmployeeNotFound
	}

	status := rows[0].toStatus()
	return &status, nil
}

// Summary counts employees currently in, out, and never seen.
func (s *statusService) Summary() (*StatusSummary, error) {
	statuses, err := s.CurrentStatuses()
	if err != nil {
		return nil, err
	}

	summary := &StatusSummary{Total: len(statuses)}
	for _, status := range statuses {
		switch {
		case status.CurrentStatus == nil:
			summary.Unknown++
		case status.IsPresent():
			summary.In++
		default:
			summary.Out++
		}
	}
	return summary, nil
}
