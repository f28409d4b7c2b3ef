package services

import (
	"timeclock/internal/broadcast"
	"timeclock/internal/models"
)

// LogFilter holds optional filter parameters for listing recent logs.
type LogFilter struct {
	EmployeeID *uint
	Limit      int
}

// RecordStorer defines the contract for durable employee and log storage.
// Logs can only be appended; there is no update or delete operation.
type RecordStorer interface {
	ListEmployees() ([]models.Employee, error)
	GetEmployee(id uint) (*models.Employee, error)
	EmployeeExists(id uint) (bool, error)
	AppendLog(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error)
	GetLog(id uint) (*models.EnrichedLogEntry, error)
	RecentLogs(filter LogFilter) ([]models.EnrichedLogEntry, error)
	CountLogs(employeeID *uint) (int64, error)
}

// StatusSummary counts employees by their current projected status.
type StatusSummary struct {
	Total   int `json:"total"`
	In      int `json:"in"`
	Out     int `json:"out"`
	Unknown int `json:"unknown"`
}

// StatusProjector derives each employee's presence from their log history.
// Every call reads the store; nothing is cached.
type StatusProjector interface {
	CurrentStatuses() ([]models.EmployeeStatus, error)
	StatusFor(employeeID uint) (*models.EmployeeStatus, error)
	Summary() (*StatusSummary, error)
}

// CheckInServicer records a single check-in or check-out and announces it.
type CheckInServicer interface {
	CheckInOrOut(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error)
}

// Publisher fans an event out to live subscribers and reports how many
// deliveries succeeded.
type Publisher interface {
	Publish(event broadcast.Event) int
}
