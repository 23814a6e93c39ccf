package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is not visible
// to the caller (ownership scoping matches zero rows).
var ErrNotFound = errors.New("not found")
