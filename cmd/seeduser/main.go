// Command seeduser creates or refreshes one demo account per role plus the
// starter categories. Safe to run repeatedly.
package main

import (
	"context"
	"os"
	"time"

	"auromart/internal/config"
	"auromart/internal/infra"
	"auromart/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const demoPassword = "auromart2026"

var demoCategories = []string{"Beverages", "Snacks", "Dairy", "Household", "Personal Care"}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	ctx := context.Background()
	if err := seed(ctx, db, string(hash)); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("password", demoPassword).Msg("demo users ready")
}

func seed(ctx context.Context, db *gorm.DB, hash string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range demoCategories {
			c := model.Category{Name: name}
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
				Create(&c).Error; err != nil {
				return err
			}
		}

		for _, role := range []model.Role{model.RoleRetailer, model.RoleDistributor, model.RoleManufacturer, model.RoleAdmin} {
			business := "Demo " + string(role)
			u := model.User{
				Email:        string(role) + "@auromart.test",
				PasswordHash: hash,
				FirstName:    "Demo",
				LastName:     string(role),
				Role:         role,
				BusinessName: &business,
				IsActive:     true,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "is_active", "updated_at"}),
			}).Create(&u).Error
			if err != nil {
				return err
			}
			log.Info().Str("email", u.Email).Str("role", string(role)).Msg("seeded user")
		}
		return nil
	})
}
