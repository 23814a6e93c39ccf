package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/container"
	handlers "github.com/weihanng/techtrove/internal/interface/http"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/helpers"
)

type OrderModule struct {
	Handler *handlers.OrderHandler
	Cart    *application.CartService
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, cart *application.CartService, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, Cart: cart, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	auth.Use(middleware.CartCount(m.Cart))
	{
		auth.GET("/orders", m.Handler.History)
		auth.POST("/reviews", m.Handler.Review)
	}
}
