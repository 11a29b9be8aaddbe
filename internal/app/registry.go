package app

import (
	"database/sql"

	"go-leave/internal/auth"
	"go-leave/internal/config"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/shared/token"
	"go-leave/internal/staff"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	staffRepo staff.Repository,
	cfg *config.Config,
	logger *zap.Logger,
) (auth.Service, error) {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPermissions(), rbac.DefaultInheritance(), logger)
	if err != nil {
		return nil, err
	}

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	// --- Services ---
	provisioner := staff.NewProvisioner(db, staffRepo, staff.NewIDGenerator(), logger)
	authService := auth.NewService(staffRepo, provisioner, rbacService, tokens, cfg.Auth.AdminPassword, logger)
	staffService := staff.NewService(db, staffRepo, provisioner, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	staffHandler := staff.NewHandler(staffService, logger)

	// --- Routes Registration ---
	auth.RegisterRoutes(router, authHandler, tokens)
	staff.RegisterRoutes(router, staffHandler, tokens, authService)

	return authService, nil
}
