package main

import (
	"errors"
	"flag"
	"log"

	"go-leave/internal/config"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/database"
	"go-leave/internal/shared/logger"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up, down or version")
	steps := flag.Int("steps", 0, "number of steps for down (0 means all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, zl)
	if err != nil {
		zl.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		zl.Fatal("get sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	m, err := database.NewMigrator(sqlDB)
	if err != nil {
		zl.Fatal("init migrator", zap.Error(err))
	}

	switch *direction {
	case "up":
		err = m.Up()
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			zl.Fatal("read version", zap.Error(verr))
		}
		zl.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		zl.Fatal("unknown direction", zap.String("direction", *direction))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		zl.Fatal("migration failed", zap.String("direction", *direction), zap.Error(err))
	}
	zl.Info("migration complete", zap.String("direction", *direction))
}
