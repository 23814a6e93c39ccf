package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/response"
	"github.com/weihanng/techtrove/pkg/validation"
)

type OrderHandler struct {
	Orders  *application.OrderService
	Reviews *application.ReviewService
	Logger  *logrus.Logger
}

func NewOrderHandler(orders *application.OrderService, reviews *application.ReviewService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Reviews: reviews, Logger: logger}
}

func (h *OrderHandler) History(c *gin.Context) {
	orders, err := h.Orders.History(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.Logger.WithError(err).Error("list orders failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load orders", nil)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"orders": out}, "orders", nil)
}

type reviewRequest struct {
	OrderID   string `json:"order_id" binding:"required,uuid"`
	ProductID string `json:"product_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Review    string `json:"review" binding:"required,min=3,max=2000"`
}

// Review accepts a rating for a product bought in one of the caller's
// orders and marks that order line reviewed.
func (h *OrderHandler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Reviews.Submit(c.GetString(middleware.CtxUserIDKey), application.SubmitInput{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Text:      req.Review,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOrderNotFound):
			response.Error[any](c, http.StatusNotFound, "order not found", nil)
		case errors.Is(err, application.ErrOrderLineNotFound):
			response.Error[any](c, http.StatusNotFound, "product not found in this order", nil)
		default:
			h.Logger.WithError(err).Error("submit review failed")
			response.Error[any](c, http.StatusInternalServerError, "could not submit review", nil)
		}
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"reviewed": true}, "review submitted", nil)
}
