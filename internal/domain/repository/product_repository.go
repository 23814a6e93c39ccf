package repository

import "github.com/weihanng/techtrove/internal/domain/entity"

// ProductRepository defines catalog persistence. Update and Delete are
// scoped by seller id: a target the caller does not own matches zero
// rows and behaves as not-found.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	Delete(id, sellerID string) error

	List(offset, limit int) ([]entity.Product, error)
	Count() (int, error)
	ListBySeller(sellerID string, offset, limit int) ([]entity.Product, error)
	CountBySeller(sellerID string) (int, error)
	Search(term string, offset, limit int) ([]entity.Product, error)
	CountSearch(term string) (int, error)
	TopRated(limit int) ([]entity.Product, error)

	UpdateRating(id string, rating float64) error
}
