package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokehub/internal/mirror"
	"pokehub/pkg/utils"
)

func main() {
	if err := utils.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg := utils.LoadMirrorConfig()

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// serves data/pokemon/*.json at GET /pokemon/:query
	idx, err := mirror.Load(cfg.DataDir)
	if err != nil {
		logger.Fatal("load mirror data", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	logger.Info("mirror loaded", zap.Int("records", len(idx.Names())))

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(utils.GinLogger(logger), gin.Recovery())
	mirror.NewHandler(idx, logger).RegisterRoutes(r.Group(""))

	logger.Info("mirror-server listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("mirror-server", zap.Error(err))
	}
}
