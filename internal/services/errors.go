// internal/services/errors.go
package services

import "errors"

// Sentinel errors handlers branch on to pick a status code.
var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrCouponNotAvailable = errors.New("coupon not available")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrCategoryInUse      = errors.New("category has products")
)
