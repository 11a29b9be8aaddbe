package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const corsAnyOrigin = "*"

// CORS answers browser cross-origin checks. An entry of "*" allows every
// origin; credentials are only advertised for explicitly listed origins.
func CORS(allowOrigins []string) gin.HandlerFunc {
	allowAny := false
	origins := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == corsAnyOrigin {
			allowAny = true
			continue
		}
		if o != "" {
			origins[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		switch {
		case origins[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		case allowAny:
			c.Header("Access-Control-Allow-Origin", corsAnyOrigin)
		default:
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+HeaderRequestID)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Expose-Headers", HeaderRequestID)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
