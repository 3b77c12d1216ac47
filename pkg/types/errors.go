package domain

import "errors"

// Validation errors.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrOutOfRange         = errors.New("value out of valid range")
	ErrInvalidEnum        = errors.New("invalid enum value")
	ErrInvalidProductCode = errors.New("invalid product code")
)

// ErrNoSKUFound is returned when a product has neither a merchant SKU nor a
// usable standard product code.
var ErrNoSKUFound = errors.New("no sku found for product")
