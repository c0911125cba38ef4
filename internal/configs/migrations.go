package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"kanban-today.com/kanban-today/pkg/constants"
)

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

type schemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	AppliedAt string `gorm:"not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

var migrations = []migration{
	{
		version: 1,
		name:    "create_tasks",
		up: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS tasks (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					due_date TEXT NOT NULL,
					priority INTEGER NOT NULL,
					created_at TEXT NOT NULL,
					done INTEGER NOT NULL DEFAULT 0,
					done_at TEXT
				)`).Error
		},
	},
	{
		version: 2,
		name:    "add_task_status",
		up: func(tx *gorm.DB) error {
			if !tx.Migrator().HasColumn("tasks", "status") {
				if err := tx.Exec(`ALTER TABLE tasks ADD COLUMN status TEXT NOT NULL DEFAULT 'todo'`).Error; err != nil {
					return err
				}
			}

			// Rows finished before the column existed must land in the done column.
			return tx.Exec(`
				UPDATE tasks
				SET status = 'done', done_at = COALESCE(done_at, created_at)
				WHERE done = 1 AND status != 'done'`).Error
		},
	},
	{
		version: 3,
		name:    "index_task_status",
		up: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`).Error
		},
	},
}

// SchemaVersion is the version a store reaches after Migrate.
var SchemaVersion = migrations[len(migrations)-1].version

// Migrate applies every migration not yet recorded in schema_migrations,
// each in its own transaction, and returns the resulting schema version.
func Migrate(db *gorm.DB) (int, error) {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`).Error; err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []int
	if err := db.Model(&schemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return 0, fmt.Errorf("read schema_migrations: %w", err)
	}

	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now().Format(constants.TimestampLayout),
			}).Error
		})
		if err != nil {
			return 0, fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}

		log.Printf("applied migration %d (%s)", m.version, m.name)
	}

	return SchemaVersion, nil
}
