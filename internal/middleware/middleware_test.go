package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"
	"go-leave/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authorizerFunc func(ctx context.Context, callerID, resource, action string) error

func (f authorizerFunc) Authorize(ctx context.Context, callerID, resource, action string) error {
	return f(ctx, callerID, resource, action)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour, "leave-api")

	newRouter := func() *gin.Engine {
		r := setupRouter()
		r.GET("/protected", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"caller_id": c.GetString(middleware.ContextCallerID),
				"role":      c.GetString(middleware.ContextCallerRole),
				"ctx_id":    contextutil.GetCallerID(c.Request.Context()),
			})
		})
		return r
	}

	t.Run("valid token", func(t *testing.T) {
		signed, err := tokens.Issue(token.Identity{ID: "staff-1", Role: "admin"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"caller_id":"staff-1","role":"admin","ctx_id":"staff-1"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decode(t, w)
		assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
		assert.Equal(t, "Missing authorization token", env.Message)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		other := token.NewManager("other-secret", time.Hour, "leave-api")
		signed, err := other.Issue(token.Identity{ID: "staff-1", Role: "admin"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", decode(t, w).Message)
	})

	t.Run("expired token", func(t *testing.T) {
		short := token.NewManager("test-secret", -time.Minute, "leave-api")
		signed, err := short.Issue(token.Identity{ID: "staff-1", Role: "admin"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has expired", decode(t, w).Message)
	})
}

func TestRequirePermission(t *testing.T) {
	withCaller := func(id string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if id != "" {
				c.Set(middleware.ContextCallerID, id)
			}
			c.Next()
		}
	}

	newRouter := func(callerID string, authz middleware.Authorizer) *gin.Engine {
		r := setupRouter()
		r.POST("/staff/add",
			withCaller(callerID),
			middleware.RequirePermission(authz, "staff", "create"),
			func(c *gin.Context) { response.Success(c, http.StatusCreated, "ok", nil) },
		)
		return r
	}

	t.Run("allowed", func(t *testing.T) {
		authz := authorizerFunc(func(ctx context.Context, callerID, resource, action string) error {
			assert.Equal(t, "admin-id", callerID)
			assert.Equal(t, "staff", resource)
			assert.Equal(t, "create", action)
			return nil
		})

		w := httptest.NewRecorder()
		newRouter("admin-id", authz).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/staff/add", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("denied", func(t *testing.T) {
		authz := authorizerFunc(func(ctx context.Context, callerID, resource, action string) error {
			return apperror.ErrForbidden
		})

		w := httptest.NewRecorder()
		newRouter("staff-id", authz).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/staff/add", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decode(t, w)
		assert.Equal(t, "Access denied", env.Message)
		assert.Equal(t, http.StatusForbidden, env.StatusCode)
	})

	t.Run("no caller", func(t *testing.T) {
		authz := authorizerFunc(func(ctx context.Context, callerID, resource, action string) error {
			t.Fatal("authorizer must not be called")
			return nil
		})

		w := httptest.NewRecorder()
		newRouter("", authz).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/staff/add", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authorizer error", func(t *testing.T) {
		authz := authorizerFunc(func(ctx context.Context, callerID, resource, action string) error {
			return errors.New("db down")
		})

		w := httptest.NewRecorder()
		newRouter("admin-id", authz).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/staff/add", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred", decode(t, w).Message)
	})
}

func TestContextLogger(t *testing.T) {
	r := setupRouter()
	r.Use(middleware.ContextLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		assert.NotNil(t, contextutil.GetLogger(ctx, nil))
		c.String(http.StatusOK, contextutil.GetRequestID(ctx))
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.HeaderRequestID, "rid-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "rid-123", w.Body.String())
		assert.Equal(t, "rid-123", w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(middleware.HeaderRequestID))
	})
}

func TestCORS(t *testing.T) {
	newRouter := func(origins ...string) *gin.Engine {
		r := setupRouter()
		r.Use(middleware.CORS(origins))
		r.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		return r
	}

	send := func(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/ping", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("listed origin", func(t *testing.T) {
		w := send(newRouter("https://hr.example.com/"), http.MethodGet, "https://hr.example.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://hr.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("unlisted origin", func(t *testing.T) {
		w := send(newRouter("https://hr.example.com"), http.MethodGet, "https://evil.example.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard", func(t *testing.T) {
		w := send(newRouter("*"), http.MethodGet, "https://anywhere.example.com")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		w := send(newRouter("*"), http.MethodOptions, "https://anywhere.example.com")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("same origin request untouched", func(t *testing.T) {
		w := send(newRouter("*"), http.MethodGet, "")

		assert.Equal(t, "pong", w.Body.String())
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
