package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/interface/middleware"
	"github.com/weihanng/techtrove/pkg/response"
	"github.com/weihanng/techtrove/pkg/validation"
)

// AdminHandler covers the seller-facing product CRUD. Every operation
// is scoped to the authenticated seller; another seller's products are
// simply not found.
type AdminHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.CatalogService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type productForm struct {
	Title       string `form:"title" binding:"required,min=3,max=200"`
	Price       string `form:"price" binding:"required"`
	Description string `form:"description" binding:"required,min=5,max=5000"`
	Quantity    int    `form:"quantity" binding:"required,gte=1"`
	Category    string `form:"category" binding:"required"`
}

func (f *productForm) toInput() (application.ProductInput, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil || price.IsNegative() {
		return application.ProductInput{}, errors.New("invalid price")
	}
	return application.ProductInput{
		Title:       f.Title,
		Price:       price,
		Description: f.Description,
		Quantity:    f.Quantity,
		Category:    f.Category,
	}, nil
}

func (h *AdminHandler) ListMine(c *gin.Context) {
	page, err := h.Svc.ListBySeller(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), pageQuery(c))
	if err != nil {
		h.Logger.WithError(err).Error("list seller products failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load products", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": productListJSON(page.Products)}, "your products", page.Pagination)
}

// AddProduct creates a product from a multipart form. The image is
// required on create and is stored before the row is written.
func (h *AdminHandler) AddProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	in, err := form.toInput()
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"price": "must be a non-negative number"})
		return
	}
	sellerID := c.GetString(middleware.CtxUserIDKey)

	imageURL, err := h.uploadedImage(c, sellerID)
	if err != nil {
		h.Logger.WithError(err).Error("store product image failed")
		response.Error[any](c, http.StatusInternalServerError, "could not store image", nil)
		return
	}
	if imageURL == "" {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"image": "an image is required"})
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), sellerID, in, imageURL)
	if err != nil {
		if errors.Is(err, application.ErrBadCategory) {
			response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"category": "is not a known category"})
			return
		}
		h.Logger.WithError(err).Error("create product failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create product", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": productJSON(p)}, "product created", nil)
}

// GetEdit returns the product pre-filled for the edit form, only if it
// belongs to the caller.
func (h *AdminHandler) GetEdit(c *gin.Context) {
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
	if detail.Product.SellerID != c.GetString(middleware.CtxUserIDKey) {
		response.Error[any](c, http.StatusNotFound, "product not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": productJSON(detail.Product)}, "product", nil)
}

// EditProduct updates the caller's product. A new image is optional;
// omitting it keeps the current one.
func (h *AdminHandler) EditProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	in, err := form.toInput()
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"price": "must be a non-negative number"})
		return
	}
	sellerID := c.GetString(middleware.CtxUserIDKey)

	imageURL, err := h.uploadedImage(c, sellerID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not store image", nil)
		return
	}

	p, err := h.Svc.Update(c.Request.Context(), sellerID, c.Param("productId"), in, imageURL)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProductNotFound):
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
		case errors.Is(err, application.ErrBadCategory):
			response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"category": "is not a known category"})
		default:
			h.Logger.WithError(err).Error("update product failed")
			response.Error[any](c, http.StatusInternalServerError, "could not update product", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": productJSON(p)}, "product updated", nil)
}

// DeleteProduct removes the caller's product. Deleting a product that
// does not exist, or that belongs to someone else, reports success.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	sellerID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), sellerID, c.Param("productId")); err != nil {
		h.Logger.WithError(err).Error("delete product failed")
		response.Error[any](c, http.StatusInternalServerError, "could not delete product", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "product deleted", nil)
}

// uploadedImage stores the multipart "image" part if one was sent and
// returns its public URL; no file means an empty URL and no error.
func (h *AdminHandler) uploadedImage(c *gin.Context, sellerID string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.Svc.UploadImage(c.Request.Context(), sellerID, src, file.Filename, file.Header.Get("Content-Type"))
}
