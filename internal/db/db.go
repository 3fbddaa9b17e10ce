package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/config"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
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
		&models.Clinic{},
		&models.Branch{},
		&models.BranchSchedule{},
		&models.Room{},
		&models.Specialty{},
		&models.Dentist{},
		&models.DentistAvailability{},
		&models.DentistException{},
		&models.Patient{},
		&models.User{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE clinics
        SET timezone = 'America/Guayaquil'
        WHERE timezone IS NULL OR timezone = ''
    `)

	installExclusionConstraints(db)

	return db
}

// installExclusionConstraints adds the postgres exclusion constraints that
// back up the application-level conflict detector. Even if two transactions
// slip past the row locks, the database refuses overlapping active
// appointments on the same dentist or room (SQLSTATE 23P01).
func installExclusionConstraints(db *gorm.DB) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	for constraint, column := range map[string]string{
		"appointments_dentist_no_overlap": "dentist_id",
		"appointments_room_no_overlap":    "room_id",
	} {
		db.Exec(`
            DO $$
            BEGIN
                IF NOT EXISTS (
                    SELECT 1 FROM pg_constraint WHERE conname = '` + constraint + `'
                ) THEN
                    ALTER TABLE appointments
                    ADD CONSTRAINT ` + constraint + `
                    EXCLUDE USING gist (
                        ` + column + ` WITH =,
                        tstzrange(start_time, end_time) WITH &&
                    )
                    WHERE (status IN ('pending', 'confirmed', 'in_progress'));
                END IF;
            END
            $$;
        `)
	}
}
