// Inkwell backend API server.
//
// @title Inkwell API
// @version 1.0
// @description Blog CMS backend with version history, diffing and restore.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell/inkwell-backend/internal/config"
	"github.com/inkwell/inkwell-backend/internal/handler"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/internal/migration"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/internal/routes"
	"github.com/inkwell/inkwell-backend/internal/service"
	"github.com/inkwell/inkwell-backend/pkg/cache"
	"github.com/inkwell/inkwell-backend/pkg/jwt"
	"github.com/inkwell/inkwell-backend/pkg/logger"
	pkgredis "github.com/inkwell/inkwell-backend/pkg/redis"
	"github.com/inkwell/inkwell-backend/pkg/storage"
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

	db, err := openDatabase(cfg)
	if err != nil {
		logger.GetLogger().Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migration.Run(db); err != nil {
		logger.GetLogger().Fatal().Err(err).Msg("migration failed")
	}

	// Redis is optional; without it the cache degrades to pass-through
	var cacheSvc cache.Service
	redisClient, err := pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		logger.Warn("redis unavailable, running without cache: %v", err)
		cacheSvc = cache.NewService(nil)
	} else {
		cacheSvc = cache.NewService(redisClient)
	}

	var uploader service.Uploader
	if cfg.Storage.Enabled {
		storageClient, err := storage.NewClient(storage.Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			logger.GetLogger().Fatal().Err(err).Msg("failed to initialize object storage")
		}
		uploader = storageClient
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTTLHours)*time.Hour)

	// Repositories
	blogRepo := repository.NewBlogRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	txManager := repository.NewTxManager(db, blogRepo, versionRepo)

	// Services
	versionSvc := service.NewVersionService(versionRepo, txManager, cacheSvc)
	blogSvc := service.NewBlogService(blogRepo, versionSvc, cacheSvc)
	authSvc := service.NewAuthService(userRepo, jwtManager)
	settingsSvc := service.NewSettingsService(settingRepo, cacheSvc)
	mediaSvc := service.NewMediaService(uploader)

	if env == "production" || env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(router, routes.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Blog:     handler.NewBlogHandler(blogSvc),
		Version:  handler.NewVersionHandler(versionSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
		Media:    handler.NewMediaHandler(mediaSvc),
	}, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server on %s (env=%s)", addr, env)
	if err := router.Run(addr); err != nil {
		logger.GetLogger().Fatal().Err(err).Msg("server exited")
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Warn
	if cfg.Server.Env == "local" || cfg.Server.Env == "development" {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
