package services

import (
	"timeclock/internal/broadcast"
	apperrors "timeclock/internal/errors"
	"timeclock/internal/logger"
	"timeclock/internal/models"
)

// checkInService orchestrates one check-in or check-out.
type checkInService struct {
	store     RecordStorer
	publisher Publisher
}

// NewCheckInService creates a new CheckInServicer. publisher may be nil, in
// which case events are recorded but not announced.
func NewCheckInService(store RecordStorer, publisher Publisher) CheckInServicer {
	return &checkInService{store: store, publisher: publisher}
}

// CheckInOrOut validates the request, confirms the employee exists, appends
// the log and publishes it as a NEW_LOG event. Consecutive events of the same
// type are accepted. Delivery failures never fail the call: the entry is
// already committed when publishing starts.
func (s *checkInService) CheckInOrOut(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error) {
	if employeeID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "employeeId is required")
	}
	if logType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type is required")
	}
	if !logType.Valid() {
		return nil, apperrors.ErrInvalidLogType
	}

	exists, err := s.store.EmployeeExists(employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrEmployeeNotFound
	}

	entry, err := s.store.AppendLog(employeeID, logType)
	if err != nil {
		return nil, err
	}

	delivered := 0
	if s.publisher != nil {
		delivered = s.publisher.Publish(broadcast.NewLogEvent(entry))
	}

	logger.Get().Infow("time log recorded",
		"log_id", entry.ID,
		"employee_id", entry.EmployeeID,
		"type", entry.Type,
		"delivered", delivered,
	)
	return entry, nil
}
