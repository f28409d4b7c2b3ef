package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"timeclock/internal/config"
	"timeclock/internal/logger"
	"timeclock/internal/models"
)

// Models lists every table managed by the application, parents first.
var Models = []interface{}{
	&models.Employee{},
	&models.LogEntry{},
}

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
}

// NewManager opens the configured database.
func NewManager(cfg *config.Config) (*Manager, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dial)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		// SQLite allows a single writer; one connection serializes every
		// statement and guarantees a read observes the preceding write.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, driver: cfg.DBDriver}, nil
}

// Open creates a GORM handle with the settings shared by the server, the
// maintenance command and the tests.
func Open(dial gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.New(zapWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
}

// Migrate declares the schema. AutoMigrate only creates what is missing, so it
// is safe to run on every start.
func (m *Manager) Migrate() error {
	logger.Get().Info("Declaring database schema...")
	if err := AutoMigrate(m.db); err != nil {
		return err
	}
	logger.Get().Info("Database schema is up to date")
	return nil
}

// AutoMigrate creates any missing tables, indexes and constraints.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Driver returns the configured driver name.
func (m *Manager) Driver() string {
	return m.driver
}

// Close releases the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// zapWriter routes GORM's logger output through the application logger.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.Get().Warnf(format, args...)
}
