package models

import "time"

// Employee is a member of staff who can check in and out.
// Employees are created by the seeder only and never modified afterwards.
type Employee struct {
	Base
	Name       string `gorm:"not null" json:"name"`
	Department string `gorm:"not null;default:''" json:"department"`
	Role       string `gorm:"not null;default:''" json:"role"`
}

// EmployeeStatus is an Employee enriched with the projection of their most
// recent log entry. Both fields are nil when the employee has no logs yet.
type EmployeeStatus struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Department    string     `json:"department"`
	Role          string     `json:"role"`
	CurrentStatus *LogType   `json:"current_status"`
	LastEvent     *time.Time `json:"last_event"`
}

// IsPresent reports whether the employee's latest event is a check-in.
func (s EmployeeStatus) IsPresent() bool {
	return s.CurrentStatus != nil && *s.CurrentStatus == LogTypeIn
}
