package migration

import (
	"encoding/json"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

// Run applies schema migrations and seeds baseline data
func Run(db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		return err
	}
	if err := seedAdminUser(db); err != nil {
		return err
	}
	return seedDefaultSettings(db)
}

// AutoMigrate creates or updates the schema for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Blog{},
		&domain.BlogVersion{},
		&domain.Setting{},
	)
}

// seedAdminUser creates the initial admin account when the users table is
// empty. The password comes from ADMIN_PASSWORD; without it no account is
// created and login stays impossible until one is provisioned.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Warn("no users exist and ADMIN_PASSWORD is not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@localhost"
	}

	admin := &domain.User{
		Email:        email,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("seeded admin user %s", email)
	return nil
}

// seedDefaultSettings inserts the well-known settings when the table is empty
func seedDefaultSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Setting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := map[string]interface{}{
		domain.SettingSiteTitle: "Inkwell",
		domain.SettingTheme:     "light",
	}

	for key, value := range defaults {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		setting := &domain.Setting{Key: key, Value: string(encoded)}
		if err := db.Create(setting).Error; err != nil {
			return err
		}
	}

	logger.Info("seeded %d default settings", len(defaults))
	return nil
}
