package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"zozikafe/config"
	"zozikafe/internal/infra/kv"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects GORM to Postgres or SQLite and migrates the key-value table.
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
		dialector = sqlite.Open(dsn + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(DELETE)")
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, driver)
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&kv.Record{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// OpenStore returns the key-value store selected by cfg.
func OpenStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverBadger:
		if err := os.MkdirAll(cfg.StorePath, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		s, err := kv.NewBadgerStore(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open badger: %w", err)
		}
		log.Printf("database: badger store at %s", cfg.StorePath)
		return s, nil
	case config.DriverSQLite:
		db, err := Open(cfg.StoreDriver, cfg.StorePath, cfg.DBDebug)
		if err != nil {
			return nil, err
		}
		log.Printf("database: sqlite store at %s", cfg.StorePath)
		return kv.NewSQLStore(db), nil
	case config.DriverPostgres:
		db, err := Open(cfg.StoreDriver, cfg.DBURL, cfg.DBDebug)
		if err != nil {
			return nil, err
		}
		log.Println("database: connected to postgres")
		return kv.NewSQLStore(db), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.StoreDriver)
}
