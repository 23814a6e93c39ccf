package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weihanng/techtrove/internal/container"
	handlers "github.com/weihanng/techtrove/internal/interface/http"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/helpers"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/admin")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/products", m.Handler.ListMine)
		auth.POST("/products", m.Handler.AddProduct)
		auth.GET("/products/:productId/edit", m.Handler.GetEdit)
		auth.PUT("/products/:productId", m.Handler.EditProduct)
		auth.DELETE("/products/:productId", m.Handler.DeleteProduct)
	}
}
