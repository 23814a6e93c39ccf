package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartLineSubtotal(t *testing.T) {
	l := CartLine{
		Product:  Product{Price: decimal.RequireFromString("349.90")},
		Quantity: 3,
	}
	assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("1049.70")))
}

func TestCartTotal(t *testing.T) {
	lines := []CartLine{
		{Product: Product{Price: decimal.RequireFromString("1899.00")}, Quantity: 1},
		{Product: Product{Price: decimal.RequireFromString("349.00")}, Quantity: 2},
	}
	assert.True(t, CartTotal(lines).Equal(decimal.RequireFromString("2597.00")))
	assert.True(t, CartTotal(nil).IsZero())
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.Truef(t, ValidCategory(c), "category %q", c)
	}
	assert.False(t, ValidCategory("groceries"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Phone"))
}
