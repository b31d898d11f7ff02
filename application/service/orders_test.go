package service

import (
	"context"
	"testing"
	"time"

	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/infrastructure/persistence"
	"github.com/assistant-mcp/knowd/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2024, 6, 15, 8, 30, 45, 0, time.UTC)
}

func newOrdersService(t *testing.T) (*Orders, persistence.OrderStore) {
	t.Helper()
	store := persistence.NewOrderStore(testdb.New(t))
	return NewOrders(store, nil, WithClock(testClock)), store
}

func saveTestOrder(t *testing.T, store persistence.OrderStore, id, supplierID string, priority float64, status order.Status) {
	t.Helper()
	o := order.NewOrder(
		id,
		"1000000042",
		supplierID,
		"Classic denim jacket",
		"sf2302287372782550",
		1200,
		priority,
		status,
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	)
	_, err := store.SaveOrder(context.Background(), o)
	require.NoError(t, err)
}

func saveTestSupplier(t *testing.T, store persistence.OrderStore, id, name string) {
	t.Helper()
	_, err := store.SaveSupplier(context.Background(), order.NewSupplierCapacity(id, name, 10, 8))
	require.NoError(t, err)
}

func TestOrders_Query(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)
	saveTestOrder(t, store, "ORD101", "SUP001", 45.0, order.StatusPending)
	saveTestOrder(t, store, "ORD102", "SUP001", 91.0, order.StatusInProduction)
	saveTestOrder(t, store, "ORD103", "SUP002", 60.0, order.StatusInProduction)

	inProduction, err := svc.Query(ctx, "SUP001", "in_production")
	require.NoError(t, err)
	require.Len(t, inProduction, 2)
	assert.Equal(t, "ORD102", inProduction[0].ID())
	assert.Equal(t, "ORD100", inProduction[1].ID())

	all, err := svc.Query(ctx, "SUP001", "all")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	everything, err := svc.Query(ctx, "", "all")
	require.NoError(t, err)
	assert.Len(t, everything, 4)
}

func TestOrders_Query_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrdersService(t)

	_, err := svc.Query(ctx, "SUP001", "shipped")
	require.ErrorIs(t, err, order.ErrInvalidRequest)
}

func TestOrders_RandomOutageOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestSupplier(t, store, "SUP001", "Eastern Textile Mill")
	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)
	saveTestOrder(t, store, "ORD101", "SUP001", 45.0, order.StatusCompleted)

	outage, err := svc.RandomOutageOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD100", outage.Order.ID())
	assert.Equal(t, "Eastern Textile Mill", outage.Supplier.Name())
	assert.Equal(t, 10, outage.Supplier.TotalCapacity())
}

func TestOrders_RandomOutageOrder_NoCandidates(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusCompleted)

	_, err := svc.RandomOutageOrder(ctx)
	require.ErrorIs(t, err, order.ErrNoOutageOrders)
}

func TestOrders_RandomOutageOrder_MissingSupplierDefaults(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestOrder(t, store, "ORD100", "SUP404", 82.5, order.StatusInProduction)

	outage, err := svc.RandomOutageOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Unknown supplier", outage.Supplier.Name())
	assert.Equal(t, 10, outage.Supplier.TotalCapacity())
	assert.Equal(t, 8, outage.Supplier.UsedCapacity())
}

func TestOrders_Transfer(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)

	transfer, err := svc.Transfer(ctx, TransferParams{
		OrderID:       "ORD100",
		NewSupplierID: "SUP002",
		Quantity:      400,
		Reason:        "size outage at current supplier",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD100_TRANSFER_20240615083045", transfer.ID())
	assert.Equal(t, "SUP002", transfer.SupplierID())
	assert.Equal(t, 400, transfer.RequiredQuantity())
	assert.Equal(t, order.StatusPendingConfirmation, transfer.Status())

	// The transfer order is persisted and the original is untouched.
	persisted, err := store.Order(ctx, "ORD100_TRANSFER_20240615083045")
	require.NoError(t, err)
	assert.Equal(t, "Classic denim jacket", persisted.ProductName())

	original, err := store.Order(ctx, "ORD100")
	require.NoError(t, err)
	assert.Equal(t, "SUP001", original.SupplierID())
	assert.Equal(t, order.StatusInProduction, original.Status())
}

func TestOrders_Transfer_Validation(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)

	_, err := svc.Transfer(ctx, TransferParams{OrderID: "ORD100", NewSupplierID: "SUP002", Quantity: 0})
	require.ErrorIs(t, err, order.ErrInvalidRequest)

	_, err = svc.Transfer(ctx, TransferParams{OrderID: "ORD100", NewSupplierID: "", Quantity: 10})
	require.ErrorIs(t, err, order.ErrInvalidRequest)

	_, err = svc.Transfer(ctx, TransferParams{OrderID: "ORD999", NewSupplierID: "SUP002", Quantity: 10})
	require.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrders_ContactMaterial(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)

	request, err := svc.ContactMaterial(ctx, MaterialParams{
		OrderID:      "ORD100",
		MaterialType: "fabric",
		Urgency:      "urgent",
	})
	require.NoError(t, err)
	assert.Equal(t, "MAT20240615083045", request.RequestID())
	assert.Equal(t, time.Date(2024, 6, 16, 8, 30, 45, 0, time.UTC), request.EstimatedArrival())
	assert.True(t, request.CanExpedite())
	assert.Contains(t, request.Response(), "ORD100")
}

func TestOrders_ContactMaterial_Validation(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)

	_, err := svc.ContactMaterial(ctx, MaterialParams{OrderID: "ORD100", MaterialType: "steel", Urgency: "urgent"})
	require.ErrorIs(t, err, order.ErrInvalidRequest)

	_, err = svc.ContactMaterial(ctx, MaterialParams{OrderID: "ORD100", MaterialType: "fabric", Urgency: "whenever"})
	require.ErrorIs(t, err, order.ErrInvalidRequest)

	_, err = svc.ContactMaterial(ctx, MaterialParams{OrderID: "ORD999", MaterialType: "fabric", Urgency: "normal"})
	require.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrders_UpdateSchedule(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestSupplier(t, store, "SUP001", "Eastern Textile Mill")
	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)

	update, err := svc.UpdateSchedule(ctx, ScheduleParams{
		SupplierID:      "SUP001",
		PriorityOrderID: "ORD100",
		DelayedOrderIDs: []string{"ORD101", "ORD102"},
		DelayDays:       2,
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD100", update.PriorityOrderID())
	assert.Equal(t, time.Date(2024, 6, 16, 8, 30, 45, 0, time.UTC), update.StartDate())
	assert.Equal(t, time.Date(2024, 6, 18, 8, 30, 45, 0, time.UTC), update.CompletionDate())
	assert.Equal(t, 2, update.DelayedOrders())
	assert.True(t, update.Notified())
}

func TestOrders_UpdateSchedule_Validation(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	saveTestSupplier(t, store, "SUP001", "Eastern Textile Mill")
	saveTestOrder(t, store, "ORD100", "SUP001", 82.5, order.StatusInProduction)

	_, err := svc.UpdateSchedule(ctx, ScheduleParams{
		SupplierID:      "SUP001",
		PriorityOrderID: "ORD100",
		DelayDays:       0,
	})
	require.ErrorIs(t, err, order.ErrInvalidRequest)

	_, err = svc.UpdateSchedule(ctx, ScheduleParams{
		SupplierID:      "SUP999",
		PriorityOrderID: "ORD100",
		DelayDays:       1,
	})
	require.ErrorIs(t, err, order.ErrSupplierNotFound)
}

func TestOrders_RecordException(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrdersService(t)

	rec, err := svc.RecordException(ctx, ExceptionParams{
		OrderID:         "ORD100",
		SupplierID:      "SUP001",
		ExceptionType:   "quality_issue",
		ExceptionDetail: "Fabric shade mismatch on lot 7",
		HandlerName:     "Dana Reeve",
	})
	require.NoError(t, err)
	assert.Equal(t, "EXC20240615083045", rec.RecordID())
	assert.Equal(t, testClock(), rec.RecordedAt())

	records, err := store.Exceptions(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "quality_issue", records[0].ExceptionType())
}

func TestOrders_RecordException_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrdersService(t)

	_, err := svc.RecordException(ctx, ExceptionParams{OrderID: "", ExceptionType: "quality_issue"})
	require.ErrorIs(t, err, order.ErrInvalidRequest)

	_, err = svc.RecordException(ctx, ExceptionParams{OrderID: "ORD100", ExceptionType: ""})
	require.ErrorIs(t, err, order.ErrInvalidRequest)
}
