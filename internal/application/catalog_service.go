package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
	"github.com/weihanng/techtrove/pkg/helpers"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrImageRequired   = errors.New("image required")
	ErrBadCategory     = errors.New("invalid category")
)

// CatalogService covers listing, search, and seller-scoped CRUD over
// the product catalog. Products are indexed to Elasticsearch on every
// write and searched there when a client is configured; otherwise
// search runs against Postgres.
type CatalogService struct {
	Products  repo.ProductRepository
	Reviews   repo.ReviewRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
	PerPage   int
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products   []entity.Product
	Pagination Pagination
}

// ProductDetail is a product plus its reviews for the detail page.
type ProductDetail struct {
	Product *entity.Product
	Reviews []entity.Review
}

// ProductInput carries the validated form fields for create/update.
type ProductInput struct {
	Title       string
	Price       decimal.Decimal
	Description string
	Quantity    int
	Category    string
}

func (s *CatalogService) List(ctx context.Context, page int) (*ProductPage, error) {
	total, err := s.Products.Count()
	if err != nil {
		return nil, err
	}
	products, err := s.Products.List(pageOffset(page, s.PerPage), s.PerPage)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Pagination: paginate(total, page, s.PerPage)}, nil
}

// Featured returns the ten best-rated products for the landing page.
func (s *CatalogService) Featured(ctx context.Context) ([]entity.Product, error) {
	return s.Products.TopRated(10)
}

func (s *CatalogService) Search(ctx context.Context, term string, page int) (*ProductPage, error) {
	if s.ES != nil && s.ESIndex != "" {
		if res, err := s.searchES(ctx, term, page); err == nil {
			return res, nil
		} else if s.Logger != nil {
			s.Logger.WithError(err).WithField("term", term).Warn("es search failed, falling back to sql")
		}
	}
	total, err := s.Products.CountSearch(term)
	if err != nil {
		return nil, err
	}
	products, err := s.Products.Search(term, pageOffset(page, s.PerPage), s.PerPage)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Pagination: paginate(total, page, s.PerPage)}, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*ProductDetail, error) {
	p, err := s.Products.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	reviews, err := s.Reviews.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: p, Reviews: reviews}, nil
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerID string, page int) (*ProductPage, error) {
	total, err := s.Products.CountBySeller(sellerID)
	if err != nil {
		return nil, err
	}
	products, err := s.Products.ListBySeller(sellerID, pageOffset(page, s.PerPage), s.PerPage)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Pagination: paginate(total, page, s.PerPage)}, nil
}

// Create inserts a product owned by sellerID. An image is mandatory on
// create; the handler uploads it first and passes the URL.
func (s *CatalogService) Create(ctx context.Context, sellerID string, in ProductInput, imageURL string) (*entity.Product, error) {
	if imageURL == "" {
		return nil, ErrImageRequired
	}
	if !entity.ValidCategory(in.Category) {
		return nil, ErrBadCategory
	}
	p := &entity.Product{
		Title:       in.Title,
		ImageURL:    imageURL,
		Price:       in.Price,
		Description: in.Description,
		Quantity:    in.Quantity,
		Category:    in.Category,
		SellerID:    sellerID,
	}
	if err := s.Products.Create(p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Update edits a product the seller owns; a product owned by someone
// else matches zero rows and is treated as not found. imageURL is
// optional and keeps the stored image when empty.
func (s *CatalogService) Update(ctx context.Context, sellerID, id string, in ProductInput, imageURL string) (*entity.Product, error) {
	if !entity.ValidCategory(in.Category) {
		return nil, ErrBadCategory
	}
	p, err := s.Products.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p.Title = in.Title
	p.Price = in.Price
	p.Description = in.Description
	p.Quantity = in.Quantity
	p.Category = in.Category
	if imageURL != "" {
		p.ImageURL = imageURL
	}
	p.SellerID = sellerID // scoping, not reassignment: the UPDATE matches zero rows for a non-owner
	if err := s.Products.Update(p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Delete removes a product the seller owns; deleting someone else's
// product (or a missing one) is silently a no-op.
func (s *CatalogService) Delete(ctx context.Context, sellerID, id string) error {
	if err := s.Products.Delete(id, sellerID); err != nil {
		return err
	}
	s.deleteIndex(ctx, id)
	return nil
}

// UploadImage streams a product image to GCS and returns its public URL.
func (s *CatalogService) UploadImage(ctx context.Context, sellerID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", sellerID, uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

type esProductDoc struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
	Rating    float64         `json:"rating"`
	SellerID  string          `json:"seller_id"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s *CatalogService) index(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := esProductDoc{
		ID: p.ID, Title: p.Title, ImageURL: p.ImageURL, Price: p.Price,
		Quantity: p.Quantity, Category: p.Category, Rating: p.Rating,
		SellerID: p.SellerID, CreatedAt: p.CreatedAt,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func (s *CatalogService) searchES(ctx context.Context, term string, page int) (*ProductPage, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  term,
				"fields": []string{"title^2", "category"},
			},
		},
		"sort": []map[string]any{
			{"rating": map[string]any{"order": "desc"}},
		},
		"from": pageOffset(page, s.PerPage),
		"size": s.PerPage,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
		s.ES.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errors.New("es search: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source esProductDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		products = append(products, entity.Product{
			ID: d.ID, Title: d.Title, ImageURL: d.ImageURL, Price: d.Price,
			Quantity: d.Quantity, Category: d.Category, Rating: d.Rating,
			SellerID: d.SellerID, CreatedAt: d.CreatedAt,
		})
	}
	return &ProductPage{Products: products, Pagination: paginate(parsed.Hits.Total.Value, page, s.PerPage)}, nil
}
