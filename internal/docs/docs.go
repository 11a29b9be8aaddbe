package docs

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const SpecPath = "/static/swagger.json"

//go:embed swagger.json
var swaggerJSON []byte

// RegisterRoutes serves the OpenAPI document and the Swagger UI that reads it.
func RegisterRoutes(r gin.IRouter) {
	r.GET(SpecPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", swaggerJSON)
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(SpecPath)))
}
