package entity

import (
	"time"
)

// Review is one rating + text per (product, order line) purchase.
// AuthorName is populated on reads that join the users table.
type Review struct {
	ID         string
	ProductID  string
	UserID     string
	AuthorName string
	Rating     int
	Review     string
	CreatedAt  time.Time
}
