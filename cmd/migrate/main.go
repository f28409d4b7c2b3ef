package main

import (
	"fmt"
	stdlog "log"
	"os"

	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/logger"
	"timeclock/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: migrate <up|seed|stats>")
	}

	m, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}()

	switch command := args[0]; command {
	case "up":
		if err := m.Migrate(); err != nil {
			return err
		}
		logger.Get().Info("Schema declared successfully")

	case "seed":
		if err := m.Migrate(); err != nil {
			return err
		}
		created, err := m.Seed()
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		if created == 0 {
			logger.Get().Info("Employees already present, nothing seeded")
		}

	case "stats":
		store := services.NewRecordStore(m.DB())
		employees, err := store.ListEmployees()
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		logs, err := store.CountLogs(nil)
		if err != nil {
			return fmt.Errorf("count logs: %w", err)
		}
		logger.Get().Infof("Driver: %s, Employees: %d, Logs: %d", m.Driver(), len(employees), logs)
		for i := range employees {
			n, err := store.CountLogs(&employees[i].ID)
			if err != nil {
				return fmt.Errorf("count logs for employee %d: %w", employees[i].ID, err)
			}
			logger.Get().Infof("  %-20s %d", employees[i].Name, n)
		}

	default:
		return fmt.Errorf("unknown command: %s (use up, seed, or stats)", command)
	}

	return nil
}
