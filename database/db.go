package database

import (
	"fmt"
	"time"

	"fastfast-logistics/logger"
	"fastfast-logistics/models/booking"
	"fastfast-logistics/models/coupon"
	"fastfast-logistics/models/log"
	"fastfast-logistics/models/rider"
	"fastfast-logistics/models/shipment"
	"fastfast-logistics/models/user"
	"fastfast-logistics/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Config selects and addresses the database. Driver is postgres or sqlite.
type Config struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
	LogLevel gormLogger.LogLevel
}

// ConfigFromEnv reads DB_* variables.
func ConfigFromEnv() Config {
	cfg := Config{
		Driver:   utils.GetEnv("DB_DRIVER", "postgres"),
		Host:     utils.GetEnv("DB_HOST", "localhost"),
		Port:     utils.GetEnv("DB_PORT", "5432"),
		Name:     utils.GetEnv("DB_DATABASE", "fastfast"),
		User:     utils.GetEnv("DB_USERNAME", "postgres"),
		Password: utils.GetEnv("DB_PASSWORD", ""),
		SSLMode:  utils.GetEnv("DB_SSLMODE", "disable"),
		DSN:      utils.GetEnv("DB_DSN", ""),
		LogLevel: gormLogger.Warn,
	}
	if utils.GetEnv("APP_ENV", "production") == "development" {
		cfg.LogLevel = gormLogger.Info
	}
	return cfg
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "postgres":
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		dsn := c.DSN
		if dsn == "" {
			dsn = "fastfast.db?_foreign_keys=on"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
}

// Open connects without migrating. Unique violations surface as
// gorm.ErrDuplicatedKey.
func Open(cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// one writer keeps sqlite transactions serialized
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// OpenSQLiteMemory opens a private in-memory database with the schema
// migrated. name must be unique per caller.
func OpenSQLiteMemory(name string) (*gorm.DB, error) {
	db, err := Open(Config{
		Driver:   "sqlite",
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name),
		LogLevel: gormLogger.Silent,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InitDB connects using the environment, migrates and sets DB.
func InitDB() (*gorm.DB, error) {
	cfg := ConfigFromEnv()

	db, err := Open(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the " + cfg.Driver + " database")

	if err := Migrate(db); err != nil {
		logger.Error("Failed to migrate the database", err)
		return nil, err
	}

	DB = db
	return DB, nil
}

// Migrate creates tables in dependency order, then indexes and, on
// postgres, named check constraints.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}
	logger.Success("All tables migrated")

	if err := createIndexes(db); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := createConstraints(db); err != nil {
			return err
		}
	}
	return nil
}

func autoMigrate(db *gorm.DB) error {
	stages := [][]interface{}{
		// Stage 1: accounts and standalone tables
		{&user.User{}, &coupon.Coupon{}, &log.Log{}},
		// Stage 2: depends on users
		{&rider.Rider{}},
		// Stage 3: depends on users and riders
		{&booking.Booking{}},
		// Stage 4: depends on bookings
		{&shipment.Shipment{}, &booking.BookingStatusEvent{}},
	}

	for i, models := range stages {
		for _, model := range models {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("stage %d: failed to migrate %T: %w", i+1, model, err)
			}
		}
	}
	return nil
}

// Tables lists the managed tables in migration order.
func Tables() []string {
	return []string{"users", "coupons", "logs", "riders", "bookings", "shipments", "booking_status_events"}
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_bookings_user_status", "CREATE INDEX IF NOT EXISTS idx_bookings_user_status ON bookings(user_id, status)"},
		{"idx_bookings_open", "CREATE INDEX IF NOT EXISTS idx_bookings_open ON bookings(status, rider_id)"},
		{"idx_bookings_pickup_date", "CREATE INDEX IF NOT EXISTS idx_bookings_pickup_date ON bookings(pickup_date)"},
		{"idx_shipments_user_id", "CREATE INDEX IF NOT EXISTS idx_shipments_user_id ON shipments(user_id)"},
		{"idx_booking_status_events_booking", "CREATE INDEX IF NOT EXISTS idx_booking_status_events_booking ON booking_status_events(booking_id, created_at)"},
		{"idx_coupons_active_expiry", "CREATE INDEX IF NOT EXISTS idx_coupons_active_expiry ON coupons(is_active, expiry_date)"},
		{"idx_logs_method", "CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// createConstraints adds named constraints not declared on the models.
func createConstraints(db *gorm.DB) error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "chk_coupons_used_count",
			sql:  `ALTER TABLE coupons ADD CONSTRAINT chk_coupons_used_count CHECK (used_count <= usage_limit)`,
		},
		{
			name: "chk_coupons_usage_limit",
			sql:  `ALTER TABLE coupons ADD CONSTRAINT chk_coupons_usage_limit CHECK (usage_limit > 0)`,
		},
		{
			name: "chk_bookings_dates",
			sql:  `ALTER TABLE bookings ADD CONSTRAINT chk_bookings_dates CHECK (delivery_date >= pickup_date)`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`
		if err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}
		if exists {
			logger.Debug("Constraint already exists: " + constraint.name)
			continue
		}
		if err := db.Exec(constraint.sql).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			continue
		}
		logger.Success("Created constraint: " + constraint.name)
	}
	return nil
}
