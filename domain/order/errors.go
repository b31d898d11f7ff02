package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order domain.
var (
	// ErrInvalidRequest indicates a request failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrOrderNotFound indicates the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrSupplierNotFound indicates the supplier does not exist.
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrNoOutageOrders indicates no order is currently eligible for
	// outage handling.
	ErrNoOutageOrders = errors.New("no outage orders available")
)

// invalidf wraps a validation failure in ErrInvalidRequest.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
