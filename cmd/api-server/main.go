package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"pokehub/internal/events"
	"pokehub/internal/pokeapi"
	"pokehub/internal/pokemon"
	"pokehub/internal/session"
	"pokehub/pkg/database"
	"pokehub/pkg/utils"
)

func main() {
	if err := utils.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg := utils.LoadConfig()

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, backend, err := openStore(cfg)
	if err != nil {
		logger.Fatal("session store", zap.Error(err))
	}
	defer store.Close()
	logger.Info("session store ready", zap.String("backend", backend))

	router := gin.New()
	router.Use(utils.GinLogger(logger), gin.Recovery())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Start the events feed first so a bad bind is noticed early
	hub := events.NewHub(logger)
	router.GET("/ws", events.WSHandler(hub))
	tcpSrv := events.NewServer(cfg.TCPAddr, hub, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": backend})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"store_error": err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"store":       "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"store":       backend,
			"upstream":    cfg.APIBase,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	tokenSvc := session.TokenService{
		Secret:   []byte(cfg.Session.Secret),
		Issuer:   cfg.Session.Issuer,
		Duration: cfg.Session.Duration,
	}

	api := pokeapi.New(cfg.APIBase, cfg.HTTPTimeout, logger.Named("pokeapi"))
	pokeHandler := pokemon.NewHandler(api, store, hub, logger)

	sessioned := router.Group("/")
	sessioned.Use(session.Middleware(tokenSvc))
	pokeHandler.RegisterRoutes(sessioned)

	corsMW := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", session.HeaderToken},
		ExposedHeaders: []string{session.HeaderToken},
		MaxAge:         300,
	})

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: corsMW(router),
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP API server listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := tcpSrv.Close(); err != nil {
		logger.Warn("tcp shutdown", zap.Error(err))
	}
	hub.CloseAll()

	wg.Wait()
	logger.Info("servers stopped")
}

// openStore picks Redis when POKEHUB_REDIS_URL is set, SQLite otherwise.
func openStore(cfg utils.Config) (session.Store, string, error) {
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		st, err := session.OpenRedis(ctx, cfg.RedisURL, cfg.Session.Duration)
		if err != nil {
			return nil, "", err
		}
		return st, "redis", nil
	}

	dbCfg := database.DefaultConfig()
	st, err := session.OpenSQLite(dbCfg, cfg.Session.Duration)
	if err != nil {
		return nil, "", err
	}
	if dbCfg.InMemory() {
		return st, "sqlite (memory)", nil
	}
	return st, "sqlite", nil
}
