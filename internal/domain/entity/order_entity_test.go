package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{Price: decimal.RequireFromString("2399.00"), Quantity: 2},
		{Price: decimal.RequireFromString("349.00"), Quantity: 1},
	}}
	assert.True(t, o.Total().Equal(decimal.RequireFromString("5147.00")))

	empty := &Order{}
	assert.True(t, empty.Total().IsZero())
}
