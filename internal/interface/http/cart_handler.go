package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/response"
	"github.com/weihanng/techtrove/pkg/validation"
)

type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// setCartCount stamps the cart's unit count on the response. Mutating
// handlers call it with the view they load after the change, so the
// badge never lags the cart by one request.
func setCartCount(c *gin.Context, view *application.CartView) {
	n := 0
	for _, l := range view.Lines {
		n += l.Quantity
	}
	c.Header("X-Cart-Count", strconv.Itoa(n))
}

func (h *CartHandler) View(c *gin.Context) {
	view, err := h.Svc.View(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.Logger.WithError(err).Error("load cart failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load cart", nil)
		return
	}
	setCartCount(c, view)
	response.Success(c, http.StatusOK, gin.H{"cart": cartJSON(view)}, "cart", nil)
}

// Add puts one unit of the product in the cart, or bumps an existing
// line by one. Unknown products are ignored.
func (h *CartHandler) Add(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Add(userID, req.ProductID); err != nil {
		h.Logger.WithError(err).Error("add to cart failed")
		response.Error[any](c, http.StatusInternalServerError, "could not update cart", nil)
		return
	}
	view, err := h.Svc.View(userID)
	if err != nil {
		h.Logger.WithError(err).Error("load cart failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load cart", nil)
		return
	}
	setCartCount(c, view)
	response.Success(c, http.StatusOK, gin.H{"cart": cartJSON(view)}, "added to cart", nil)
}

func (h *CartHandler) Increment(c *gin.Context) {
	view, err := h.Svc.Increment(c.GetString(middleware.CtxUserIDKey), c.Param("productId"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMaxQuantity):
			response.Error[any](c, http.StatusBadRequest, "Max Quantity reached", nil)
		case errors.Is(err, application.ErrLineNotFound):
			response.Error[any](c, http.StatusNotFound, "product not found in cart", nil)
		default:
			h.Logger.WithError(err).Error("increment cart line failed")
			response.Error[any](c, http.StatusInternalServerError, "could not update cart", nil)
		}
		return
	}
	setCartCount(c, view)
	response.Success(c, http.StatusOK, gin.H{"cart": cartJSON(view)}, "quantity updated", nil)
}

func (h *CartHandler) Decrement(c *gin.Context) {
	view, err := h.Svc.Decrement(c.GetString(middleware.CtxUserIDKey), c.Param("productId"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMinQuantity):
			response.Error[any](c, http.StatusBadRequest, "Minimum number for the quantity reached", nil)
		case errors.Is(err, application.ErrLineNotFound):
			response.Error[any](c, http.StatusNotFound, "product not found in cart", nil)
		default:
			h.Logger.WithError(err).Error("decrement cart line failed")
			response.Error[any](c, http.StatusInternalServerError, "could not update cart", nil)
		}
		return
	}
	setCartCount(c, view)
	response.Success(c, http.StatusOK, gin.H{"cart": cartJSON(view)}, "quantity updated", nil)
}

// Remove drops the whole line whatever its quantity. A line that is
// already gone is treated as success.
func (h *CartHandler) Remove(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Remove(userID, req.ProductID); err != nil {
		h.Logger.WithError(err).Error("remove cart line failed")
		response.Error[any](c, http.StatusInternalServerError, "could not update cart", nil)
		return
	}
	view, err := h.Svc.View(userID)
	if err != nil {
		h.Logger.WithError(err).Error("load cart failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load cart", nil)
		return
	}
	setCartCount(c, view)
	response.Success(c, http.StatusOK, gin.H{"cart": cartJSON(view)}, "removed from cart", nil)
}
