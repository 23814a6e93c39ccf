package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weihanng/techtrove/internal/container"
	handlers "github.com/weihanng/techtrove/internal/interface/http"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/reset", resetInitLimiter, m.Handler.ForgotPassword)
	rg.POST("/reset/:resetToken", resetConfirmLimiter, m.Handler.ResetPassword)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
	}
}
