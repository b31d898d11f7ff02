package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/domain/repository"
)

// Capacity reported when an order references a supplier missing from the store.
const (
	defaultSupplierCapacity     = 10
	defaultSupplierUsedCapacity = 8
)

// OutageOrder pairs an outage-eligible order with its supplier's capacity.
type OutageOrder struct {
	Order    order.Order
	Supplier order.SupplierCapacity
}

// TransferParams configures a supplier transfer.
type TransferParams struct {
	OrderID       string
	NewSupplierID string
	Quantity      int
	Reason        string
}

// MaterialParams configures a material department request.
type MaterialParams struct {
	OrderID      string
	MaterialType string
	Urgency      string
}

// ScheduleParams configures a production schedule adjustment.
type ScheduleParams struct {
	SupplierID      string
	PriorityOrderID string
	DelayedOrderIDs []string
	DelayDays       int
}

// ExceptionParams configures an exception record.
type ExceptionParams struct {
	OrderID         string
	SupplierID      string
	ExceptionType   string
	ExceptionDetail string
	HandlerName     string
}

// Orders provides supplier order queries and coordination operations.
type Orders struct {
	store  order.Repository
	clock  func() time.Time
	logger *slog.Logger
}

// OrdersOption configures an Orders service.
type OrdersOption func(*Orders)

// WithClock overrides the time source used for generated IDs and dates.
func WithClock(clock func() time.Time) OrdersOption {
	return func(s *Orders) { s.clock = clock }
}

// NewOrders creates a new Orders service.
func NewOrders(store order.Repository, logger *slog.Logger, opts ...OrdersOption) *Orders {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Orders{
		store:  store,
		clock:  time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query returns orders filtered by supplier and status, highest priority
// first. An empty supplierID matches all suppliers.
func (s *Orders) Query(ctx context.Context, supplierID string, statusFilter string) ([]order.Order, error) {
	filter, err := order.ParseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	opts := []repository.Option{repository.WithHighestPriorityFirst()}
	if supplierID != "" {
		opts = append(opts, repository.WithSupplierID(supplierID))
	}
	if filter != order.FilterAll {
		opts = append(opts, repository.WithStatus(string(filter)))
	}

	found, err := s.store.Orders(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return found, nil
}

// RandomOutageOrder picks a random in-production order for size-outage
// handling, together with its supplier's capacity. Returns
// order.ErrNoOutageOrders when no order is in production.
func (s *Orders) RandomOutageOrder(ctx context.Context) (OutageOrder, error) {
	candidates, err := s.store.Orders(ctx, repository.WithStatus(string(order.StatusInProduction)))
	if err != nil {
		return OutageOrder{}, fmt.Errorf("load outage candidates: %w", err)
	}
	if len(candidates) == 0 {
		return OutageOrder{}, order.ErrNoOutageOrders
	}

	picked := candidates[rand.IntN(len(candidates))]

	supplier, err := s.store.Supplier(ctx, picked.SupplierID())
	if err != nil {
		if !errors.Is(err, order.ErrSupplierNotFound) {
			return OutageOrder{}, fmt.Errorf("load supplier: %w", err)
		}
		supplier = order.NewSupplierCapacity(
			picked.SupplierID(),
			"Unknown supplier",
			defaultSupplierCapacity,
			defaultSupplierUsedCapacity,
		)
	}

	s.logger.Info("selected outage order",
		slog.String("order_id", picked.ID()),
		slog.String("supplier_id", picked.SupplierID()),
	)

	return OutageOrder{Order: picked, Supplier: supplier}, nil
}

// Transfer creates a transfer order that moves quantity from an existing
// order to a new supplier. The transfer awaits supplier confirmation.
func (s *Orders) Transfer(ctx context.Context, params TransferParams) (order.Order, error) {
	if params.Quantity <= 0 {
		return order.Order{}, fmt.Errorf("%w: transfer quantity must be positive", order.ErrInvalidRequest)
	}
	if params.NewSupplierID == "" {
		return order.Order{}, fmt.Errorf("%w: new supplier id is required", order.ErrInvalidRequest)
	}

	original, err := s.store.Order(ctx, params.OrderID)
	if err != nil {
		return order.Order{}, err
	}

	transfer := order.NewTransferOrder(original, params.NewSupplierID, params.Quantity, s.clock())
	saved, err := s.store.SaveOrder(ctx, transfer)
	if err != nil {
		return order.Order{}, err
	}

	s.logger.Info("supplier transfer created",
		slog.String("order_id", params.OrderID),
		slog.String("new_order_id", saved.ID()),
		slog.String("new_supplier_id", params.NewSupplierID),
		slog.Int("quantity", params.Quantity),
		slog.String("reason", params.Reason),
	)

	return saved, nil
}

// ContactMaterial asks the material department to prepare materials for an
// order and returns its response. Nothing is persisted; the department
// tracks requests on its side.
func (s *Orders) ContactMaterial(ctx context.Context, params MaterialParams) (order.MaterialRequest, error) {
	materialType, err := order.ParseMaterialType(params.MaterialType)
	if err != nil {
		return order.MaterialRequest{}, err
	}
	urgency, err := order.ParseUrgency(params.Urgency)
	if err != nil {
		return order.MaterialRequest{}, err
	}

	if _, err := s.store.Order(ctx, params.OrderID); err != nil {
		return order.MaterialRequest{}, err
	}

	request := order.NewMaterialRequest(params.OrderID, materialType, urgency, s.clock())

	s.logger.Info("material department contacted",
		slog.String("order_id", params.OrderID),
		slog.String("request_id", request.RequestID()),
		slog.String("material_type", string(materialType)),
		slog.String("urgency", string(urgency)),
	)

	return request, nil
}

// UpdateSchedule moves one order to the front of a supplier's production
// schedule, delaying the given orders.
func (s *Orders) UpdateSchedule(ctx context.Context, params ScheduleParams) (order.ScheduleUpdate, error) {
	if params.DelayDays <= 0 {
		return order.ScheduleUpdate{}, fmt.Errorf("%w: delay days must be positive", order.ErrInvalidRequest)
	}

	if _, err := s.store.Supplier(ctx, params.SupplierID); err != nil {
		return order.ScheduleUpdate{}, err
	}
	if _, err := s.store.Order(ctx, params.PriorityOrderID); err != nil {
		return order.ScheduleUpdate{}, err
	}

	update := order.NewScheduleUpdate(params.PriorityOrderID, len(params.DelayedOrderIDs), s.clock())

	s.logger.Info("production schedule updated",
		slog.String("supplier_id", params.SupplierID),
		slog.String("priority_order_id", params.PriorityOrderID),
		slog.Int("delayed_orders", update.DelayedOrders()),
		slog.Int("delay_days", params.DelayDays),
	)

	return update, nil
}

// RecordException stores a handled production exception for audit.
func (s *Orders) RecordException(ctx context.Context, params ExceptionParams) (order.ExceptionRecord, error) {
	if params.OrderID == "" || params.ExceptionType == "" {
		return order.ExceptionRecord{}, fmt.Errorf("%w: order id and exception type are required", order.ErrInvalidRequest)
	}

	rec := order.NewExceptionRecord(
		params.OrderID,
		params.SupplierID,
		params.ExceptionType,
		params.ExceptionDetail,
		params.HandlerName,
		s.clock(),
	)

	saved, err := s.store.SaveException(ctx, rec)
	if err != nil {
		return order.ExceptionRecord{}, err
	}

	s.logger.Info("exception recorded",
		slog.String("record_id", saved.RecordID()),
		slog.String("order_id", saved.OrderID()),
		slog.String("exception_type", saved.ExceptionType()),
	)

	return saved, nil
}
