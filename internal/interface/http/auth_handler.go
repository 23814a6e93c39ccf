package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/helpers"
	"github.com/weihanng/techtrove/pkg/response"
	"github.com/weihanng/techtrove/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusUnprocessableEntity, "signup failed", map[string]string{"email": "is already registered"})
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": u.ID, "email": u.Email, "name": u.Name}, "account created", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "Invalid email or password. Please try again.", nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"id": u.ID, "email": u.Email, "name": u.Name}, "login successful",
		gin.H{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	h.Svc.Logout(c.Request.Context(), uid)
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.Logger.WithError(err).Error("forgot-password failed")
		response.Error[any](c, http.StatusInternalServerError, "could not start password reset", nil)
		return
	}

	// Same body whether or not the email exists.
	response.Success[any](c, http.StatusOK, gin.H{"sent": true},
		"An email with the reset token had been sent to your email.", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("resetToken")

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		if errors.Is(err, application.ErrInvalidResetToken) {
			response.Error[any](c, http.StatusBadRequest,
				"Invalid reset token or reset token already expired. Please request another reset token", nil)
			return
		}
		h.Logger.WithError(err).Error("reset password failed")
		response.Error[any](c, http.StatusInternalServerError, "could not reset password", nil)
		return
	}

	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"created_at": u.CreatedAt,
	}, "profile", nil)
}
