package staff

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

const resource = "staff"

func RegisterRoutes(
	r gin.IRouter,
	handler *Handler,
	tokens middleware.TokenVerifier,
	authz middleware.Authorizer,
) {
	staff := r.Group("/staff")
	staff.Use(middleware.AuthMiddleware(tokens))
	{
		staff.POST("/add",
			middleware.RequirePermission(authz, resource, "create"),
			handler.Add,
		)

		staff.GET("/:staffID",
			middleware.RequirePermission(authz, resource, "read"),
			handler.Get,
		)

		staff.PATCH("/edit/:staffID",
			middleware.RequirePermission(authz, resource, "update"),
			handler.Edit,
		)

		staff.DELETE("/delete/:staffID",
			middleware.RequirePermission(authz, resource, "delete"),
			handler.Delete,
		)
	}
}
