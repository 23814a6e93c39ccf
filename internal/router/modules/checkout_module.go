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

type CheckoutModule struct {
	Handler *handlers.CheckoutHandler
	Cart    *application.CartService
	JWT     *helpers.JWTManager
}

func NewCheckoutModule(h *handlers.CheckoutHandler, cart *application.CartService, jwt *helpers.JWTManager) *CheckoutModule {
	return &CheckoutModule{Handler: h, Cart: cart, JWT: jwt}
}

// Register wires the checkout routes. CartCount runs before the
// handlers; Success and Cancel overwrite the header with the count
// they produce, so a cleared cart reports 0 on the same response.
func (m *CheckoutModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID()))
	auth.Use(middleware.CartCount(m.Cart))
	{
		auth.POST("/checkout", m.Handler.Start)
		auth.GET("/checkout/success", m.Handler.Success)
		auth.GET("/checkout/cancel", m.Handler.Cancel)
	}
}
