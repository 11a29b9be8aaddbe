package middleware

import (
	"errors"
	"strings"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"
	"go-leave/internal/shared/token"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by AuthMiddleware.
const (
	ContextCallerID   = "caller_id"
	ContextCallerRole = "caller_role"
)

// TokenVerifier is satisfied by *token.Manager.
type TokenVerifier interface {
	Parse(tokenString string) (token.Identity, error)
}

func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || tokenString == "" {
			abortWith(c, autherrors.ErrTokenMissing)
			return
		}

		identity, err := tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set(ContextCallerID, identity.ID)
		c.Set(ContextCallerRole, identity.Role)

		ctx := contextutil.WithCallerID(c.Request.Context(), identity.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Abort(c, httpErr.Status, httpErr.Message)
}
