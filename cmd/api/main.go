package main

import (
	"context"
	"log"

	"go-leave/internal/app"
	"go-leave/internal/bootstrap"
	"go-leave/internal/config"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	apperror.Init()

	router, cleanup, err := app.BuildApp(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(
		router,
		cfg.Server,
		bootstrap.NewZapLifecycleLogger(zl),
	); err != nil {
		zl.Error("http server stopped", zap.Error(err))
	}
}
