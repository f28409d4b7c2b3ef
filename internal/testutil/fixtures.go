package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"timeclock/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestEmployee creates an employee with a unique name.
func CreateTestEmployee(t *testing.T, db *gorm.DB) *models.Employee {
	t.Helper()
	return CreateTestEmployeeWithName(t, db, fmt.Sprintf("Employee %d", nextID()))
}

// CreateTestEmployeeWithName creates an employee with the given name.
func CreateTestEmployeeWithName(t *testing.T, db *gorm.DB, name string) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		Name:       name,
		Department: "Engineering",
		Role:       "Engineer",
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return employee
}

// CreateTestLog inserts a log entry with an explicit timestamp, bypassing the
// store so tests can control ordering.
func CreateTestLog(t *testing.T, db *gorm.DB, employeeID uint, logType models.LogType, ts time.Time) *models.LogEntry {
	t.Helper()

	entry := &models.LogEntry{
		EmployeeID: employeeID,
		Type:       logType,
		Timestamp:  ts.UTC(),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	return entry
}

// CountLogRows returns the number of rows in the logs table.
func CountLogRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.LogEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	return count
}
