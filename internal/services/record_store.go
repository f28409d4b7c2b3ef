package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "timeclock/internal/errors"
	"timeclock/internal/models"
	"timeclock/internal/pagination"
)

const enrichedLogColumns = "logs.id AS id, logs.employee_id AS employee_id, " +
	"employees.name AS employee_name, employees.department AS department, " +
	"logs.type AS type, logs.timestamp AS timestamp"

// recordStore persists employees and their time logs.
type recordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a new RecordStorer.
func NewRecordStore(db *gorm.DB) RecordStorer {
	return &recordStore{db: db}
}

// ListEmployees returns the full roster ordered by ID.
func (s *recordStore) ListEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.Order("id ASC").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

// GetEmployee retrieves an employee by ID.
func (s *recordStore) GetEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &employee, nil
}

// EmployeeExists reports whether an employee with the given ID is stored.
func (s *recordStore) EmployeeExists(id uint) (bool, error) {
	exists, err := employeeExists(s.db, id)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return exists, nil
}

// AppendLog inserts one log entry stamped with the server clock and returns
// it joined with the employee's name and department. The insert and the
// read-back run in one transaction so the read observes its own write.
func (s *recordStore) AppendLog(employeeID uint, logType models.LogType) (*models.EnrichedLogEntry, error) {
	if !logType.Valid() {
		return nil, apperrors.ErrInvalidLogType
	}

	var enriched *models.EnrichedLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := employeeExists(tx, employeeID)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if !exists {
			return apperrors.ErrEmployeeNotFound
		}

		entry := &models.LogEntry{
			EmployeeID: employeeID,
			Type:       logType,
			Timestamp:  tx.NowFunc().UTC(),
		}
		if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return apperrors.Wrap(apperrors.ErrEmployeeNotFound, err)
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		enriched, err = enrichedLog(tx, entry.ID)
		return err
	})
	if err != nil {
		// BEGIN and COMMIT failures surface here without an AppError.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return enriched, nil
}

// GetLog retrieves a single enriched log entry.
func (s *recordStore) GetLog(id uint) (*models.EnrichedLogEntry, error) {
	return enrichedLog(s.db, id)
}

// RecentLogs returns the newest entries first, ordered by (timestamp, id).
func (s *recordStore) RecentLogs(filter LogFilter) ([]models.EnrichedLogEntry, error) {
	query := s.db.Table("logs").
		Select(enrichedLogColumns).
		Joins("JOIN employees ON employees.id = logs.employee_id")
	if filter.EmployeeID != nil {
		query = query.Where("logs.employee_id = ?", *filter.EmployeeID)
	}

	var entries []models.EnrichedLogEntry
	if err := query.
		Order("logs.timestamp DESC").
		Order("logs.id DESC").
		Scopes(pagination.Window(filter.Limit)).
		Scan(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if entries == nil {
		entries = []models.EnrichedLogEntry{}
	}
	return entries, nil
}

// CountLogs counts log rows, optionally for a single employee.
func (s *recordStore) CountLogs(employeeID *uint) (int64, error) {
	query := s.db.Model(&models.LogEntry{})
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return count, nil
}

func employeeExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func enrichedLog(db *gorm.DB, id uint) (*models.EnrichedLogEntry, error) {
	var entry models.EnrichedLogEntry
	result := db.Table("logs").
		Select(enrichedLogColumns).
		Joins("JOIN employees ON employees.id = logs.employee_id").
		Where("logs.id = ?", id).
		Limit(1).
		Scan(&entry)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrLogNotFound
	}
	return &entry, nil
}
