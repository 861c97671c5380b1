package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/platform/envutil"
	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "")
	name := envutil.String("POSTGRES_NAME", "verahealth")
	sslmode := envutil.String("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslmode)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Assessment{},
		&types.Report{},
		&types.NarrativeCallLog{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	if err := s.db.Exec(`
		ALTER TABLE "report"
		DROP CONSTRAINT IF EXISTS "fk_report_assessment_id";
	`).Error; err != nil {
		return err
	}
	if err := s.db.Exec(`
		ALTER TABLE "report"
		ADD CONSTRAINT "fk_report_assessment_id"
		FOREIGN KEY ("assessment_id")
		REFERENCES "assessment"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		s.log.Error("Failed to configure report foreign key", "error", err)
		return err
	}

	if err := s.db.Exec(`
		ALTER TABLE "narrative_call_log"
		DROP CONSTRAINT IF EXISTS "fk_narrative_call_log_report_id";
	`).Error; err != nil {
		return err
	}
	if err := s.db.Exec(`
		ALTER TABLE "narrative_call_log"
		ADD CONSTRAINT "fk_narrative_call_log_report_id"
		FOREIGN KEY ("report_id")
		REFERENCES "report"("id")
		ON DELETE SET NULL
	`).Error; err != nil {
		s.log.Error("Failed to configure narrative call log foreign key", "error", err)
		return err
	}

	s.log.Info("Postgres tables migrated")
	return nil
}
