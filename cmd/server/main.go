package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/api"
	"github.com/jengzang/fleetmap-backend-go/internal/config"
	"github.com/jengzang/fleetmap-backend-go/internal/database"
	"github.com/jengzang/fleetmap-backend-go/internal/logger"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	if err := database.NewMigrationManager(db, cfg.MigrationsPath, log).RunMigrations(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	handlers, err := api.NewHandlers(cfg, db, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize handlers")
	}

	// 初始化路由
	router := api.SetupRouter(cfg, handlers, log)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
