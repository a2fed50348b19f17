package app

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stockd/config"
)

// getDatabase opens the configured backend. sqlite keeps a single file
// under the workdir, which matches the single-process, single-connection
// model; postgres takes a DSN.
func getDatabase(cfg *config.AppConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch cfg.Database.Type {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DBFile()), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.DBFile(), err)
		}
		// Serialize all access through one connection; the store's
		// transactions rely on a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}
