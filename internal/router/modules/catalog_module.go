package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weihanng/techtrove/internal/container"
	handlers "github.com/weihanng/techtrove/internal/interface/http"
	"github.com/weihanng/techtrove/internal/interface/middleware"
)

// CatalogModule is the public storefront: landing page, paginated
// listing, product detail, and search. No auth required.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath())

	rg.GET("/", browseLimiter, m.Handler.Index)
	rg.GET("/products", browseLimiter, m.Handler.List)
	rg.GET("/products/:productId", browseLimiter, m.Handler.Get)
	rg.GET("/search/:searchTerm", searchLimiter, m.Handler.Search)
	rg.POST("/search", searchLimiter, m.Handler.SearchRedirect)
}
