package app

import (
	"context"
	"net/http"

	"go-leave/internal/config"
	"go-leave/internal/docs"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/database"
	"go-leave/internal/shared/response"
	"go-leave/internal/staff"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects to the database, applies migrations when enabled, wires
// every module and makes sure the default administrator exists. The returned
// cleanup closes the connection pool.
func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, func() error, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
	}

	router := NewRouter(cfg, logger)

	authService, err := registerModules(router, sqlDB, staff.NewRepository(gormDB), cfg, logger)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	adminID, err := authService.EnsureDefaultAdmin(ctx)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	logger.Info("default admin ready", zap.String("id", adminID))

	return router, sqlDB.Close, nil
}

// NewRouter returns an engine with the global middleware and the routes that
// do not belong to a module.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	r.Use(middleware.ContextLogger(logger))

	r.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Welcome to the Leave API", nil)
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found")
	})

	docs.RegisterRoutes(r)

	return r
}
