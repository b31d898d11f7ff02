package order

import (
	"context"

	"github.com/assistant-mcp/knowd/domain/repository"
)

// Repository persists orders, supplier capacities and exception
// records.
type Repository interface {
	// Order returns the order with the given ID, or ErrOrderNotFound.
	Order(ctx context.Context, id string) (Order, error)
	// Orders returns orders matching the given options.
	Orders(ctx context.Context, options ...repository.Option) ([]Order, error)
	// SaveOrder creates or updates an order.
	SaveOrder(ctx context.Context, o Order) (Order, error)
	// CountOrders counts orders matching the given options.
	CountOrders(ctx context.Context, options ...repository.Option) (int64, error)
	// Supplier returns the supplier with the given ID, or
	// ErrSupplierNotFound.
	Supplier(ctx context.Context, id string) (SupplierCapacity, error)
	// SaveSupplier creates or updates a supplier.
	SaveSupplier(ctx context.Context, s SupplierCapacity) (SupplierCapacity, error)
	// SaveException persists an exception record.
	SaveException(ctx context.Context, rec ExceptionRecord) (ExceptionRecord, error)
}
