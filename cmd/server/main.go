package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"renovado/internal/auth"
	"renovado/internal/commons"
	"renovado/internal/config"
	"renovado/internal/infrastructure/logger"
	"renovado/internal/infrastructure/mysql"
	"renovado/internal/order"
	"renovado/internal/server"
	"renovado/internal/stats"
)

func main() {
	cfg, err := commons.LoadConfig("internal/config/config.yaml")
	if err != nil {
		// No config file; environment (plus optional .env) takes over.
		cfg, err = config.Load()
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	loginCtrl, requireAdmin := auth.NewModule(db, cfg, zapLogger)
	ordersCtrl, adminOrdersCtrl := order.NewModule(db, cfg, zapLogger)
	statsCtrl := stats.NewModule(db, zapLogger)

	router := server.NewRouter(ordersCtrl, adminOrdersCtrl, statsCtrl, loginCtrl, requireAdmin, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
