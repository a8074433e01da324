package database

import (
	"fmt"
	"time"

	"clinicbook/internal/config"
	"clinicbook/internal/domain"
	"clinicbook/internal/domain/appointment"
	"clinicbook/internal/domain/doctor"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Constraint names for the slot-exclusivity indexes. The appointment
// repository matches these to translate unique violations into typed
// booking errors.
const (
	DoctorSlotConstraint  = "uq_appointments_doctor_slot"
	PatientSlotConstraint = "uq_appointments_patient_slot"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableAutomaticPing:                     false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DNS(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinical", "auth", "audit"} // logical namespace
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditLog{},
		&doctor.Doctor{},
		&appointment.Appointment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Slot exclusivity: at most one booked appointment per doctor per
		// instant, and per patient per instant. Cancelled and completed rows
		// fall outside the partial index, which is what frees a slot for
		// rebooking. These two indexes close the check-then-act window
		// between the conflict reads and the insert.
		{
			name:  DoctorSlotConstraint,
			query: fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON clinical.appointments (doctor_id, scheduled_at) WHERE status = 'booked' AND deleted_at IS NULL`, DoctorSlotConstraint),
		},
		{
			name:  PatientSlotConstraint,
			query: fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON clinical.appointments (patient_id, scheduled_at) WHERE status = 'booked' AND deleted_at IS NULL`, PatientSlotConstraint),
		},
		// Conflict-check and resolver lookups
		{
			name:  "idx_appointments_doctor_schedule",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_doctor_schedule ON clinical.appointments (doctor_id, scheduled_at) WHERE deleted_at IS NULL`,
		},
		{
			name:  "idx_appointments_patient_status",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_patient_status ON clinical.appointments (patient_id, status) WHERE deleted_at IS NULL`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
