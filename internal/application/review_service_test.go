package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihanng/techtrove/internal/domain/entity"
)

type reviewFixture struct {
	orderFixture
	reviews *memReviews
	svc     *ReviewService
	product *entity.Product
	orderID string
}

// newReviewFixture seeds a product, buys it as user-1, and returns the
// fixture ready for review submission.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	of := newOrderFixture(t)
	p := seedProduct(t, of.products, "Nebula X2", "1899.00", 10)
	require.NoError(t, of.carts.Upsert("user-1", p.ID))
	order, err := of.svc.Place(context.Background(), "user-1")
	require.NoError(t, err)

	reviews := &memReviews{}
	return &reviewFixture{
		orderFixture: *of,
		reviews:      reviews,
		svc: &ReviewService{
			Reviews:  reviews,
			Products: of.products,
			Orders:   of.orders,
		},
		product: p,
		orderID: order.ID,
	}
}

func TestSubmitReviewRecomputesMeanRating(t *testing.T) {
	f := newReviewFixture(t)

	require.NoError(t, f.svc.Submit("user-1", SubmitInput{
		OrderID: f.orderID, ProductID: f.product.ID, Rating: 4, Text: "solid",
	}))
	p, err := f.products.GetByID(f.product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, p.Rating, 1e-9)

	// Second purchase of the same product, second review.
	require.NoError(t, f.carts.Upsert("user-1", f.product.ID))
	order2, err := f.orderFixture.svc.Place(context.Background(), "user-1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Submit("user-1", SubmitInput{
		OrderID: order2.ID, ProductID: f.product.ID, Rating: 5, Text: "even better",
	}))

	p, err = f.products.GetByID(f.product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, p.Rating, 1e-9)
}

func TestSubmitReviewFlagsOrderLine(t *testing.T) {
	f := newReviewFixture(t)

	require.NoError(t, f.svc.Submit("user-1", SubmitInput{
		OrderID: f.orderID, ProductID: f.product.ID, Rating: 5, Text: "great",
	}))

	order, err := f.orders.GetByID(f.orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Reviewed)
}

func TestSubmitReviewRejectsForeignOrder(t *testing.T) {
	f := newReviewFixture(t)

	err := f.svc.Submit("somebody-else", SubmitInput{
		OrderID: f.orderID, ProductID: f.product.ID, Rating: 5, Text: "nope",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, f.reviews.items)
}

func TestSubmitReviewUnknownOrder(t *testing.T) {
	f := newReviewFixture(t)

	err := f.svc.Submit("user-1", SubmitInput{
		OrderID: "missing", ProductID: f.product.ID, Rating: 5, Text: "nope",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSubmitReviewProductNotInOrder(t *testing.T) {
	f := newReviewFixture(t)
	other := seedProduct(t, f.products, "AeroBuds", "349.00", 5)

	err := f.svc.Submit("user-1", SubmitInput{
		OrderID: f.orderID, ProductID: other.ID, Rating: 5, Text: "nope",
	})
	assert.ErrorIs(t, err, ErrOrderLineNotFound)
	// The review itself is kept; only the line flag failed.
	assert.Len(t, f.reviews.items, 1)
}

func TestForProductListsNewestFirst(t *testing.T) {
	f := newReviewFixture(t)
	require.NoError(t, f.reviews.Create(&entity.Review{ProductID: f.product.ID, UserID: "user-1", Rating: 3, Review: "first"}))
	require.NoError(t, f.reviews.Create(&entity.Review{ProductID: f.product.ID, UserID: "user-1", Rating: 5, Review: "second"}))

	got, err := f.svc.ForProduct(f.product.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Review)
}
