// internal/storage/db.go
package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/00jmdc-SysEng/Attendance/internal/config"
	"github.com/00jmdc-SysEng/Attendance/internal/models"
)

// OpenDB connects to Postgres and migrates the users and attendance_logs
// tables. TranslateError is required so the GormStore can recognize
// duplicate-key violations as conflicts.
func OpenDB(cfg config.Database) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.AttendanceLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
