package main

import (
	"log"
	"os"

	handlers "VoxStudio/internal/handler"
	"VoxStudio/internal/files"
	"VoxStudio/internal/models"
	"VoxStudio/internal/provider"
	"VoxStudio/internal/registry"
	"VoxStudio/pkg/backup"
	"VoxStudio/pkg/cache"
	"VoxStudio/pkg/config"
	"VoxStudio/pkg/logger"
	"VoxStudio/pkg/metrics"
	"VoxStudio/pkg/middleware"
	"VoxStudio/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GlobalConfig

	logger.Init(cfg.Log)
	defer logger.Sync()

	for _, dir := range cfg.DataDirs() {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error("failed to create data directory", zap.String("dir", dir), zap.Error(err))
			os.Exit(1)
		}
	}

	db, err := util.InitDatabase(cfg.DBDriver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", zap.Error(err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.Recording{}, &models.VoiceJob{}); err != nil {
		logger.Error("failed to migrate database", zap.Error(err))
		os.Exit(1)
	}

	c, err := cache.NewCache(cache.Config{
		Type: cfg.CacheType,
		Redis: cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
	})
	if err != nil {
		logger.Error("failed to create cache", zap.Error(err))
		os.Exit(1)
	}
	defer c.Close()

	reg := registry.New(cfg.RegistryPath(), cfg.UserRecordsDir(), c)

	voiceProvider, err := provider.NewVoiceProvider(provider.Config{
		Engine:    provider.EngineType(cfg.ProviderEngine),
		APIKey:    cfg.ProviderAPIKey,
		BaseURL:   cfg.ProviderBaseURL,
		OutputDir: cfg.GeneratedAudioDir(),
	})
	if err != nil {
		logger.Error("failed to create voice provider", zap.Error(err))
		os.Exit(1)
	}

	fileMgr := files.NewManager(cfg.DataDirs())

	if cfg.BackupEnabled {
		scheduler := backup.StartScheduler()
		defer scheduler.Stop()
	}

	gin.SetMode(cfg.Mode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(metrics.Middleware())

	h := handlers.NewHandlers(db, reg, voiceProvider, fileMgr)
	h.Register(engine)

	logger.Info("voxstudio listening", zap.String("addr", cfg.Addr))
	if err := engine.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
