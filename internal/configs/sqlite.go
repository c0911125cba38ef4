package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase opens the SQLite store and brings its schema up to date.
// A single connection serialises writers, so concurrent moves on the same
// task resolve as last write wins.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	return openDatabase(dsn, log.New(os.Stdout, "\r\n", log.LstdFlags))
}

// A missed lookup is reported as ErrTaskNotFound by the repository, so gorm
// does not log it.
func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

func openDatabase(dsn string, w logger.Writer) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(w),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if _, err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := OpenDatabase(dsn)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	return db
}
