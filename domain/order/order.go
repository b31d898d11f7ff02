// Package order contains the supplier order domain: orders, supplier
// capacity, schedule and material coordination, and exception records.
package order

import (
	"time"
)

// Status represents the production status of an order.
type Status string

// Status values.
const (
	StatusInProduction        Status = "in_production"
	StatusPending             Status = "pending"
	StatusCompleted           Status = "completed"
	StatusPendingConfirmation Status = "pending_confirmation"
)

// StatusFilter narrows an order query by status.
type StatusFilter string

// StatusFilter values.
const (
	FilterInProduction StatusFilter = "in_production"
	FilterPending      StatusFilter = "pending"
	FilterAll          StatusFilter = "all"
)

// ParseStatusFilter validates a raw status filter.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch StatusFilter(raw) {
	case FilterInProduction, FilterPending, FilterAll:
		return StatusFilter(raw), nil
	default:
		return "", invalidf("unknown order status filter %q", raw)
	}
}

// RiskLevel classifies how risky it is to delay an order.
type RiskLevel string

// RiskLevel values.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Priority thresholds for delay decisions. An order below
// DelayablePriorityLimit can be pushed back to make room for a more
// urgent one.
const (
	DelayablePriorityLimit = 50.0
	LowRiskLimit           = 35.0
	MediumRiskLimit        = 65.0
)

// idTimestamp is the timestamp layout embedded in generated IDs such
// as transfer order IDs and exception record IDs.
const idTimestamp = "20060102150405"

// Order represents a production order placed with a supplier.
type Order struct {
	id               string
	orderNumber      string
	supplierID       string
	productName      string
	skc              string
	requiredQuantity int
	priorityScore    float64
	status           Status
	createdAt        time.Time
}

// NewOrder creates an Order.
func NewOrder(
	id string,
	orderNumber string,
	supplierID string,
	productName string,
	skc string,
	requiredQuantity int,
	priorityScore float64,
	status Status,
	createdAt time.Time,
) Order {
	return Order{
		id:               id,
		orderNumber:      orderNumber,
		supplierID:       supplierID,
		productName:      productName,
		skc:              skc,
		requiredQuantity: requiredQuantity,
		priorityScore:    priorityScore,
		status:           status,
		createdAt:        createdAt,
	}
}

// NewTransferOrder derives a new order that moves the original order's
// work to another supplier. The new order starts unconfirmed and its ID
// records the original order and the transfer time.
func NewTransferOrder(original Order, newSupplierID string, quantity int, now time.Time) Order {
	return Order{
		id:               original.id + "_TRANSFER_" + now.Format(idTimestamp),
		supplierID:       newSupplierID,
		productName:      original.productName,
		skc:              original.skc,
		requiredQuantity: quantity,
		priorityScore:    original.priorityScore,
		status:           StatusPendingConfirmation,
		createdAt:        now,
	}
}

// ID returns the order ID.
func (o Order) ID() string { return o.id }

// OrderNumber returns the numeric order number, if any.
func (o Order) OrderNumber() string { return o.orderNumber }

// SupplierID returns the ID of the supplier producing the order.
func (o Order) SupplierID() string { return o.supplierID }

// ProductName returns the product being produced.
func (o Order) ProductName() string { return o.productName }

// SKC returns the SKC code, if any.
func (o Order) SKC() string { return o.skc }

// RequiredQuantity returns the ordered quantity.
func (o Order) RequiredQuantity() int { return o.requiredQuantity }

// PriorityScore returns the order's priority score.
func (o Order) PriorityScore() float64 { return o.priorityScore }

// Status returns the production status.
func (o Order) Status() Status { return o.status }

// CreatedAt returns when the order was created.
func (o Order) CreatedAt() time.Time { return o.createdAt }

// CanBeDelayed reports whether the order's priority is low enough to
// push it back for a more urgent order.
func (o Order) CanBeDelayed() bool {
	return o.priorityScore < DelayablePriorityLimit
}

// DelayRiskLevel classifies the risk of delaying this order from its
// priority score.
func (o Order) DelayRiskLevel() RiskLevel {
	switch {
	case o.priorityScore < LowRiskLimit:
		return RiskLow
	case o.priorityScore < MediumRiskLimit:
		return RiskMedium
	default:
		return RiskHigh
	}
}
