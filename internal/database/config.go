package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"timeclock/internal/config"
)

// sqliteParams enables foreign keys and waits on a locked database instead of
// failing immediately. Foreign keys are off by default in SQLite.
const sqliteParams = "_foreign_keys=on&_busy_timeout=5000"

// SQLiteDSN appends the connection parameters the application relies on to a
// SQLite path or URI.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + sqliteParams
}

// dialector returns the GORM dialector for the configured driver.
func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	case config.DriverPostgres:
		return postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
