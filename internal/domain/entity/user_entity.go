package entity

import (
	"time"
)

// User is the aggregate root for the customer/seller domain.
// Passwords are stored as bcrypt hashes in Password field.
// Every user may sell products; ownership is enforced by seller_id
// scoping in the product queries, not by a role flag.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
