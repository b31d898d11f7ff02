package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/domain/repository"
	"github.com/assistant-mcp/knowd/internal/database"
	"gorm.io/gorm/clause"
)

// OrderStore implements order.Repository using GORM.
type OrderStore struct {
	orders     database.Repository[order.Order, OrderModel]
	suppliers  database.Repository[order.SupplierCapacity, SupplierModel]
	exceptions database.Repository[order.ExceptionRecord, ExceptionRecordModel]
}

var _ order.Repository = OrderStore{}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(db database.Database) OrderStore {
	return OrderStore{
		orders:     database.NewRepository[order.Order, OrderModel](db, OrderMapper{}, "order"),
		suppliers:  database.NewRepository[order.SupplierCapacity, SupplierModel](db, SupplierMapper{}, "supplier"),
		exceptions: database.NewRepository[order.ExceptionRecord, ExceptionRecordModel](db, ExceptionMapper{}, "exception record"),
	}
}

// Order retrieves a single order by ID.
func (s OrderStore) Order(ctx context.Context, id string) (order.Order, error) {
	o, err := s.orders.FindOne(ctx, repository.WithOrderID(id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return order.Order{}, fmt.Errorf("%w: %s", order.ErrOrderNotFound, id)
		}
		return order.Order{}, err
	}
	return o, nil
}

// Orders retrieves orders matching the given options.
func (s OrderStore) Orders(ctx context.Context, options ...repository.Option) ([]order.Order, error) {
	return s.orders.Find(ctx, options...)
}

// SaveOrder creates or updates an order.
func (s OrderStore) SaveOrder(ctx context.Context, o order.Order) (order.Order, error) {
	model := s.orders.Mapper().ToModel(o)

	result := s.orders.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_number", "supplier_id", "product_name", "skc",
			"required_quantity", "priority_score", "status",
		}),
	}).Create(&model)

	if result.Error != nil {
		return order.Order{}, fmt.Errorf("save order: %w", result.Error)
	}
	return s.orders.Mapper().ToDomain(model), nil
}

// CountOrders returns the number of orders matching the given options.
func (s OrderStore) CountOrders(ctx context.Context, options ...repository.Option) (int64, error) {
	return s.orders.Count(ctx, options...)
}

// Supplier retrieves a supplier's capacity by ID.
func (s OrderStore) Supplier(ctx context.Context, id string) (order.SupplierCapacity, error) {
	sup, err := s.suppliers.FindOne(ctx, repository.WithCondition("id", id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return order.SupplierCapacity{}, fmt.Errorf("%w: %s", order.ErrSupplierNotFound, id)
		}
		return order.SupplierCapacity{}, err
	}
	return sup, nil
}

// SaveSupplier creates or updates a supplier's capacity.
func (s OrderStore) SaveSupplier(ctx context.Context, sup order.SupplierCapacity) (order.SupplierCapacity, error) {
	model := s.suppliers.Mapper().ToModel(sup)

	result := s.suppliers.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "total_capacity", "used_capacity",
		}),
	}).Create(&model)

	if result.Error != nil {
		return order.SupplierCapacity{}, fmt.Errorf("save supplier: %w", result.Error)
	}
	return s.suppliers.Mapper().ToDomain(model), nil
}

// SaveException appends a handled exception record.
func (s OrderStore) SaveException(ctx context.Context, rec order.ExceptionRecord) (order.ExceptionRecord, error) {
	model := s.exceptions.Mapper().ToModel(rec)

	if result := s.exceptions.DB(ctx).Create(&model); result.Error != nil {
		return order.ExceptionRecord{}, fmt.Errorf("save exception record: %w", result.Error)
	}
	return s.exceptions.Mapper().ToDomain(model), nil
}

// Exceptions retrieves exception records matching the given options.
func (s OrderStore) Exceptions(ctx context.Context, options ...repository.Option) ([]order.ExceptionRecord, error) {
	return s.exceptions.Find(ctx, options...)
}
