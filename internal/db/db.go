package db

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/appointment-services/internal/config"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

// enums are created before AutoMigrate; the columns reference them by name.
var enums = []string{
	`DO $$ BEGIN
		CREATE TYPE appointment_status AS ENUM ('pending', 'confirmed', 'cancelled', 'completed');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
	`DO $$ BEGIN
		CREATE TYPE week_day AS ENUM ('monday', 'tuesday', 'wednesday', 'thursday', 'friday', 'saturday', 'sunday');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
}

func NewDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("database ready",
		slog.Int("max_open_conns", cfg.DBMaxOpenConns),
		slog.Int("max_idle_conns", cfg.DBMaxIdleConns),
	)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	for _, stmt := range enums {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create enum: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AdminDailyLimit{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}
