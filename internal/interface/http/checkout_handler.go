package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/response"
)

type CheckoutHandler struct {
	Checkout *application.CheckoutService
	Orders   *application.OrderService
	Carts    *application.CartService
	Logger   *logrus.Logger
}

func NewCheckoutHandler(checkout *application.CheckoutService, orders *application.OrderService, carts *application.CartService, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{Checkout: checkout, Orders: orders, Carts: carts, Logger: logger}
}

// Start re-validates the cart against live stock and opens a hosted
// payment session. A sold-out line aborts with the offending title and
// leaves the cart as-is.
func (h *CheckoutHandler) Start(c *gin.Context) {
	view, err := h.Checkout.Initiate(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		var soldOut *application.SoldOutError
		switch {
		case errors.As(err, &soldOut):
			response.Error[any](c, http.StatusConflict, soldOut.Error(), nil)
		case errors.Is(err, application.ErrEmptyCart):
			response.Error[any](c, http.StatusBadRequest, "Your cart is empty.", nil)
		default:
			h.Logger.WithError(err).Error("checkout failed")
			response.Error[any](c, http.StatusInternalServerError, "could not start checkout", nil)
		}
		return
	}
	items := make([]gin.H, 0, len(view.Lines))
	for _, l := range view.Lines {
		items = append(items, gin.H{
			"product":  productJSON(&l.Product),
			"quantity": l.Quantity,
			"subtotal": l.Subtotal(),
		})
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":       items,
		"total_sum":   view.Total,
		"session_id":  view.SessionID,
		"payment_url": view.PaymentURL,
	}, "checkout session created", nil)
}

// Success is the payment processor's success callback: the cart is
// turned into an order, stock is decremented, and the cart cleared.
func (h *CheckoutHandler) Success(c *gin.Context) {
	order, err := h.Orders.Place(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		if errors.Is(err, application.ErrEmptyCart) {
			response.Error[any](c, http.StatusBadRequest, "Your cart is empty.", nil)
			return
		}
		h.Logger.WithError(err).Error("place order failed")
		response.Error[any](c, http.StatusInternalServerError, "could not place order", nil)
		return
	}
	c.Header("X-Cart-Count", "0") // the cart was just emptied
	response.Success(c, http.StatusCreated, gin.H{"order": orderJSON(order)}, "order placed", nil)
}

// Cancel just shows the untouched cart again.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	view, err := h.Carts.View(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.Logger.WithError(err).Error("load cart failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load cart", nil)
		return
	}
	setCartCount(c, view)
	response.Success(c, http.StatusOK, gin.H{"cart": cartJSON(view)}, "checkout cancelled", nil)
}
