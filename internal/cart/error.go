package cart

import "errors"

var (
	// -- Domain outcomes (expected, not failures) --
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidProduct  = errors.New("invalid product id")

	// -- Resource State --
	ErrCartNotFound = errors.New("cart not found")
)

// -- Constants (External Systems) --
const PgUniqueViolation = "23505"
