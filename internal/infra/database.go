package infra

import (
	"fmt"

	"auromart/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection, migrates every table and creates the
// sequences behind order and invoice numbers.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations is idempotent and also used by the integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Inventory{},
		&model.Order{},
		&model.OrderItem{},
		&model.Invoice{},
		&model.Notification{},
		&model.Partnership{},
		&model.Favorite{},
		&model.SearchHistory{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs DDL that AutoMigrate cannot express. Every statement
// is safe to re-run.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS invoice_number_seq START 1`,
		// retry cron scans undelivered rows by age
		`CREATE INDEX IF NOT EXISTS idx_notifications_pending
		    ON notifications (created_at)
		    WHERE is_delivered = false`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_available
		    ON inventory (product_id)
		    WHERE is_available = true AND quantity > 0`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
