package database

import (
	"fmt"

	"gorm.io/gorm"

	"timeclock/internal/logger"
	"timeclock/internal/models"
)

// SampleEmployees is the roster inserted into an empty database.
var SampleEmployees = []models.Employee{
	{Name: "Somchai Jaidee", Department: "Engineering", Role: "Software Engineer"},
	{Name: "Suda Rakthai", Department: "Human Resources", Role: "HR Manager"},
	{Name: "Anan Srisuk", Department: "Operations", Role: "Warehouse Supervisor"},
	{Name: "Malee Thongdee", Department: "Finance", Role: "Accountant"},
	{Name: "Prasert Wongsawat", Department: "Engineering", Role: "QA Engineer"},
}

// Seed inserts SampleEmployees when the employees table is empty and reports
// how many rows were created. The count check and the inserts share one
// transaction, so a populated database is never seeded again.
func Seed(db *gorm.DB) (int, error) {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Employee{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count employees: %w", err)
		}
		if count > 0 {
			return nil
		}

		employees := make([]models.Employee, len(SampleEmployees))
		copy(employees, SampleEmployees)
		if err := tx.Create(&employees).Error; err != nil {
			return fmt.Errorf("insert sample employees: %w", err)
		}
		created = len(employees)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if created > 0 {
		logger.Get().Infow("seeded sample employees", "count", created)
	}
	return created, nil
}

// Seed seeds the managed database.
func (m *Manager) Seed() (int, error) {
	return Seed(m.db)
}
