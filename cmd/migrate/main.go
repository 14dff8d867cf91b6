// Standalone migration runner for deploy pipelines that migrate before
// starting the API.
package main

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/inkwell/inkwell-backend/internal/config"
	"github.com/inkwell/inkwell-backend/internal/migration"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

func main() {
	config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	logger.InitStructured(env)

	cfg, err := config.Load(fmt.Sprintf("configs/config.%s.yaml", env))
	if err != nil {
		logger.GetLogger().Fatal().Err(err).Msg("failed to load config")
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		logger.GetLogger().Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migration.Run(db); err != nil {
		logger.GetLogger().Fatal().Err(err).Msg("migration failed")
	}

	logger.Info("migration complete")
}
