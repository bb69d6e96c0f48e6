package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	server "github.com/abisalde/inventory-service/cmd"
	"github.com/abisalde/inventory-service/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, appCfg, err := server.InitConfig()
	if err != nil {
		log.Fatalf("❌ Failed to initialize configuration: %v", err)
	}

	logger, err := server.InitLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, redisCache, err := server.SetupDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to setup database", zap.Error(err))
	}
	defer db.Close()
	if redisCache != nil {
		defer redisCache.Close()
	}

	authService, err := server.SetupAuthService(db, cfg, logger)
	if err != nil {
		logger.Fatal("failed to setup auth service", zap.Error(err))
	}

	app := server.SetupFiberApp(cfg, db, redisCache, authService, logger)
	listenAddr := utils.GetListenAddress(appCfg.HTTPPort, appCfg.AppEnv)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", listenAddr),
			zap.String("env", appCfg.AppEnv),
		)
		return app.Listen(listenAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
