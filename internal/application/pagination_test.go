package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		page    int
		perPage int
		want    Pagination
	}{
		{
			name: "first of three", total: 20, page: 1, perPage: 8,
			want: Pagination{Total: 20, PerPage: 8, CurrentPage: 1, LastPage: 3, HasNext: true, HasPrev: false, NextPage: 2, PrevPage: 0},
		},
		{
			name: "middle page", total: 20, page: 2, perPage: 8,
			want: Pagination{Total: 20, PerPage: 8, CurrentPage: 2, LastPage: 3, HasNext: true, HasPrev: true, NextPage: 3, PrevPage: 1},
		},
		{
			name: "last partial page", total: 20, page: 3, perPage: 8,
			want: Pagination{Total: 20, PerPage: 8, CurrentPage: 3, LastPage: 3, HasNext: false, HasPrev: true, NextPage: 4, PrevPage: 2},
		},
		{
			name: "exact multiple", total: 16, page: 2, perPage: 8,
			want: Pagination{Total: 16, PerPage: 8, CurrentPage: 2, LastPage: 2, HasNext: false, HasPrev: true, NextPage: 3, PrevPage: 1},
		},
		{
			name: "beyond last page is not clamped", total: 10, page: 9, perPage: 8,
			want: Pagination{Total: 10, PerPage: 8, CurrentPage: 9, LastPage: 2, HasNext: false, HasPrev: true, NextPage: 10, PrevPage: 8},
		},
		{
			name: "zero page becomes one", total: 10, page: 0, perPage: 8,
			want: Pagination{Total: 10, PerPage: 8, CurrentPage: 1, LastPage: 2, HasNext: true, HasPrev: false, NextPage: 2, PrevPage: 0},
		},
		{
			name: "empty listing", total: 0, page: 1, perPage: 8,
			want: Pagination{Total: 0, PerPage: 8, CurrentPage: 1, LastPage: 0, HasNext: false, HasPrev: false, NextPage: 2, PrevPage: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.total, tt.page, tt.perPage))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 8))
	assert.Equal(t, 8, pageOffset(2, 8))
	assert.Equal(t, 0, pageOffset(0, 8))
	assert.Equal(t, 0, pageOffset(-3, 8))
}

// Every item appears on exactly one page when walking pages in order.
func TestListingPagesCoverAllProducts(t *testing.T) {
	products := newMemProducts()
	for i := 0; i < 20; i++ {
		seedProduct(t, products, "Item", "10.00", 5)
	}
	svc := &CatalogService{Products: products, Reviews: &memReviews{}, PerPage: 8}

	seen := map[string]int{}
	for page := 1; ; page++ {
		res, err := svc.List(context.Background(), page)
		assert.NoError(t, err)
		for _, p := range res.Products {
			seen[p.ID]++
		}
		if !res.Pagination.HasNext {
			break
		}
	}
	assert.Len(t, seen, 20)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "product %s appeared %d times", id, n)
	}
}
