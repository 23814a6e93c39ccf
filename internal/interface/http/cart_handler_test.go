package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
	"github.com/weihanng/techtrove/internal/interface/middleware"
)

// Slim repository stubs for exercising the handlers over HTTP. Only
// the lookups the cart flow touches are populated; the rest of the
// product interface returns zero values.

type stubProducts struct {
	items map[string]*entity.Product
}

func (s *stubProducts) Create(p *entity.Product) error { return nil }
func (s *stubProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}
func (s *stubProducts) Update(p *entity.Product) error   { return nil }
func (s *stubProducts) Delete(id, sellerID string) error { return nil }
func (s *stubProducts) List(o, l int) ([]entity.Product, error) {
	return nil, nil
}
func (s *stubProducts) Count() (int, error) { return 0, nil }
func (s *stubProducts) ListBySeller(id string, o, l int) ([]entity.Product, error) {
	return nil, nil
}
func (s *stubProducts) CountBySeller(id string) (int, error) { return 0, nil }
func (s *stubProducts) Search(t string, o, l int) ([]entity.Product, error) {
	return nil, nil
}
func (s *stubProducts) CountSearch(t string) (int, error)        { return 0, nil }
func (s *stubProducts) TopRated(l int) ([]entity.Product, error) { return nil, nil }
func (s *stubProducts) UpdateRating(id string, r float64) error  { return nil }

type stubCarts struct {
	products *stubProducts
	lines    map[string]map[string]*entity.CartItem
}

func newStubCarts(products *stubProducts) *stubCarts {
	return &stubCarts{products: products, lines: map[string]map[string]*entity.CartItem{}}
}

func (s *stubCarts) Lines(userID string) ([]entity.CartLine, error) {
	out := []entity.CartLine{}
	for pid, item := range s.lines[userID] {
		p, err := s.products.GetByID(pid)
		if err != nil {
			continue
		}
		out = append(out, entity.CartLine{Product: *p, Quantity: item.Quantity, AddedAt: item.AddedAt})
	}
	return out, nil
}

func (s *stubCarts) Get(userID, productID string) (*entity.CartItem, error) {
	item, ok := s.lines[userID][productID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *stubCarts) Upsert(userID, productID string) error {
	if s.lines[userID] == nil {
		s.lines[userID] = map[string]*entity.CartItem{}
	}
	if item, ok := s.lines[userID][productID]; ok {
		item.Quantity++
		return nil
	}
	s.lines[userID][productID] = &entity.CartItem{
		UserID: userID, ProductID: productID, Quantity: 1, AddedAt: time.Now(),
	}
	return nil
}

func (s *stubCarts) SetQuantity(userID, productID string, quantity int) error {
	if item, ok := s.lines[userID][productID]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (s *stubCarts) Remove(userID, productID string) error {
	delete(s.lines[userID], productID)
	return nil
}

func (s *stubCarts) Clear(userID string) error {
	delete(s.lines, userID)
	return nil
}

func (s *stubCarts) Count(userID string) (int, error) {
	n := 0
	for _, item := range s.lines[userID] {
		n += item.Quantity
	}
	return n, nil
}

func newCartTestRouter(t *testing.T) (*gin.Engine, *stubCarts, *entity.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	product := &entity.Product{
		ID:       "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0",
		Title:    "ClearView 27",
		Price:    decimal.RequireFromString("1199.00"),
		Quantity: 5,
		Category: "monitor",
		SellerID: "seller-1",
	}
	products := &stubProducts{items: map[string]*entity.Product{product.ID: product}}
	carts := newStubCarts(products)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := &application.CartService{Carts: carts, Products: products, Logger: logger}
	h := NewCartHandler(svc, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, "user-1") })
	r.GET("/cart", h.View)
	r.POST("/cart", h.Add)
	r.POST("/cart/:productId/increment", h.Increment)
	r.POST("/cart/:productId/decrement", h.Decrement)
	r.DELETE("/cart", h.Remove)
	return r, carts, product
}

func doCartRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// The X-Cart-Count header must reflect the cart as the response leaves
// it, including on the routes that just changed it.
func TestCartCountHeaderTracksMutations(t *testing.T) {
	r, _, product := newCartTestRouter(t)
	addBody := `{"product_id":"` + product.ID + `"}`

	w := doCartRequest(r, http.MethodPost, "/cart", addBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Cart-Count"))

	w = doCartRequest(r, http.MethodPost, "/cart/"+product.ID+"/increment", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-Cart-Count"))

	w = doCartRequest(r, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-Cart-Count"))

	w = doCartRequest(r, http.MethodPost, "/cart/"+product.ID+"/decrement", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Cart-Count"))

	w = doCartRequest(r, http.MethodDelete, "/cart", addBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-Cart-Count"))
}
