package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Daskott/people/shared"
	"github.com/Daskott/people/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "people.db"

// OpenDB connects to the database described by config. For sqlite an empty DSN
// means a file named DB_NAME inside <dir>/db.
func OpenDB(config shared.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialector(config)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the people table
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Person{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// InitializeTestDb opens a migrated in-memory sqlite db. Every call returns a fresh db.
func InitializeTestDb() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// each new connection to ":memory:" is a different database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, AutoMigrate(db)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func dialector(config shared.DatabaseConfig) (gorm.Dialector, error) {
	switch config.Driver {
	case "postgres":
		if config.DSN == "" {
			return nil, fmt.Errorf("a dsn is required for the postgres driver")
		}
		return postgres.Open(config.DSN), nil

	case "sqlite", "":
		dsn := config.DSN
		if dsn == "" {
			var err error
			dsn, err = sqliteDSN(config.Dir)
			if err != nil {
				return nil, fmt.Errorf("failed to set sqlite DSN: %v", err)
			}
		}
		return sqlite.Open(dsn), nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
}

func sqliteDSN(dbRootDir string) (string, error) {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("file:%v?_journal_mode=WAL", filepath.Join(dbDir, DB_NAME)), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}
