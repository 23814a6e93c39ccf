package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories form a closed enumeration; requests carrying anything else
// are rejected at binding time.
var Categories = []string{"phone", "laptop", "game console", "desktop", "monitor", "accessories"}

// Product belongs to the seller referenced by SellerID. Rating is the
// unweighted mean of all review ratings for the product, recomputed on
// every review submission (0 until the first review).
type Product struct {
	ID          string
	Title       string
	ImageURL    string
	Price       decimal.Decimal
	Description string
	Quantity    int
	Category    string
	Rating      float64
	SellerID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidCategory reports whether c is one of the closed category set.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
