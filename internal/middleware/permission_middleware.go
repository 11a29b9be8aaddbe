package middleware

import (
	"context"
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authorizer decides whether the caller may perform action on resource.
// Implementations return an error that apperror.ToHTTP can render.
type Authorizer interface {
	Authorize(ctx context.Context, callerID, resource, action string) error
}

// RequirePermission must run after AuthMiddleware.
func RequirePermission(authz Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.GetString(ContextCallerID)
		if callerID == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		if err := authz.Authorize(ctx, callerID, resource, action); err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Status >= http.StatusInternalServerError {
				contextutil.GetLogger(ctx, zap.L()).Error("authorization failed",
					zap.String("resource", resource),
					zap.String("action", action),
					zap.Error(err),
				)
			}
			response.Abort(c, httpErr.Status, httpErr.Message)
			return
		}

		c.Next()
	}
}
