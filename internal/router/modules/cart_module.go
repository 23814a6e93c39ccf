package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weihanng/techtrove/internal/container"
	handlers "github.com/weihanng/techtrove/internal/interface/http"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/helpers"
)

type CartModule struct {
	Handler *handlers.CartHandler
	JWT     *helpers.JWTManager
}

func NewCartModule(h *handlers.CartHandler, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Handler: h, JWT: jwt}
}

// Register wires the cart routes. No CartCount middleware here: every
// cart handler writes X-Cart-Count itself from the state it just
// produced, a pre-handler count would be stale on the mutating routes.
func (m *CartModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/cart", m.Handler.View)
		auth.POST("/cart", m.Handler.Add)
		auth.POST("/cart/:productId/increment", m.Handler.Increment)
		auth.POST("/cart/:productId/decrement", m.Handler.Decrement)
		auth.DELETE("/cart", m.Handler.Remove)
	}
}
