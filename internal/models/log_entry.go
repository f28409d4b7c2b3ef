package models

import "time"

// LogType represents the direction of a time log entry.
type LogType string

const (
	LogTypeIn  LogType = "IN"
	LogTypeOut LogType = "OUT"
)

// Valid reports whether t is one of the supported log types.
func (t LogType) Valid() bool {
	return t == LogTypeIn || t == LogTypeOut
}

// LogEntry is a single check-in or check-out event. Entries are append-only:
// nothing in the application updates or deletes them once written.
type LogEntry struct {
	Base
	EmployeeID uint      `gorm:"not null;index:idx_logs_employee_recent,priority:1" json:"employee_id"`
	Type       LogType   `gorm:"type:varchar(3);not null;check:chk_logs_type,type IN ('IN','OUT')" json:"type"`
	Timestamp  time.Time `gorm:"column:timestamp;not null;index:idx_logs_employee_recent,priority:2;index:idx_logs_timestamp" json:"timestamp"`

	// Relationships
	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

// TableName keeps the persisted table name short and stable.
func (LogEntry) TableName() string {
	return "logs"
}

// EnrichedLogEntry is a LogEntry joined with its owner's name and department
// at read time. It is the payload returned by the API and pushed to subscribers.
type EnrichedLogEntry struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Department   string    `json:"department"`
	Type         LogType   `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
}
