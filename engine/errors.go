package engine

import "errors"

var (
	// ErrInvalidProduct rejects a sale against an unknown product id.
	ErrInvalidProduct = errors.New("invalid product id")

	// ErrInsufficientStock rejects a sale larger than the quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidInput rejects malformed arguments before any store access.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable marks store connectivity failures, distinct from
	// business-rule rejections.
	ErrStoreUnavailable = errors.New("store unavailable")
)
