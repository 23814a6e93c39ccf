package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/pkg/response"
	"github.com/weihanng/techtrove/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Index returns the best-rated products for the landing page.
func (h *CatalogHandler) Index(c *gin.Context) {
	products, err := h.Svc.Featured(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("featured products failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load products", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": productListJSON(products)}, "featured products", nil)
}

func (h *CatalogHandler) List(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load products", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": productListJSON(page.Products)}, "products", page.Pagination)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	detail, err := h.Svc.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get product failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load product", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"product": productJSON(detail.Product),
		"reviews": reviewListJSON(detail.Reviews),
	}, "product", nil)
}

// Search serves GET /search/:searchTerm with a page query.
func (h *CatalogHandler) Search(c *gin.Context) {
	term := c.Param("searchTerm")
	page, err := h.Svc.Search(c.Request.Context(), term, pageQuery(c))
	if err != nil {
		h.Logger.WithError(err).WithField("term", term).Error("search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"search_term": term,
		"products":    productListJSON(page.Products),
	}, "search results", page.Pagination)
}

type searchRequest struct {
	SearchTerm string `json:"search_term" binding:"required"`
}

// SearchRedirect handles the search-bar POST by pointing the client at
// the canonical GET URL for the term.
func (h *CatalogHandler) SearchRedirect(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/api/search/"+url.PathEscape(req.SearchTerm))
}
