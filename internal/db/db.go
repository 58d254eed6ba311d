package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mentorbase/mentor-scheduler/internal/config"
	"github.com/mentorbase/mentor-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.MentorProfile{},
		&models.AvailabilityRule{},
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Two concurrent bookings for the same mentor/start must not both
	// commit. This partial index is the single source of truth for
	// "available"; the resolver's view is only advisory.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_mentor_slot
        ON sessions (mentor_id, scheduled_at)
        WHERE status IN ('pending_confirmation', 'confirmed', 'in_progress')
    `)

	return db
}
