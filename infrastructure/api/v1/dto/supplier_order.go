// Package dto defines the wire types of the v1 API.
package dto

import (
	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/infrastructure/api/envelope"
)

// TransferOrderRequest asks to move part of an order to a new supplier.
type TransferOrderRequest struct {
	OrderID       string `json:"order_id"`
	NewSupplierID string `json:"new_supplier_id"`
	Quantity      int    `json:"quantity"`
	Reason        string `json:"reason"`
}

// ContactMaterialRequest asks the material department to prepare
// materials for an order.
type ContactMaterialRequest struct {
	OrderID      string `json:"order_id"`
	MaterialType string `json:"material_type"`
	Urgency      string `json:"urgency"`
}

// UpdateScheduleRequest moves an order to the front of a supplier's
// production schedule.
type UpdateScheduleRequest struct {
	SupplierID      string   `json:"supplier_id"`
	PriorityOrderID string   `json:"priority_order_id"`
	DelayedOrderIDs []string `json:"delayed_order_ids"`
	DelayDays       int      `json:"delay_days"`
}

// RecordExceptionRequest records a handled production exception.
type RecordExceptionRequest struct {
	OrderID         string `json:"order_id"`
	SupplierID      string `json:"supplier_id"`
	ExceptionType   string `json:"exception_type"`
	ExceptionDetail string `json:"exception_detail"`
	HandlerName     string `json:"handler_name"`
}

// RandomOrderData is the payload of a random outage order pick. The
// camelCase keys follow the order management system this API feeds.
type RandomOrderData struct {
	OrderID                        string `json:"orderId"`
	OrderNumber                    string `json:"orderNumber"`
	SupplierName                   string `json:"supplierName"`
	OrderCnt                       int    `json:"orderCnt"`
	SupplierProductionCapacity     int    `json:"supplierProductionCapacity"`
	SupplierUsedProductionCapacity int    `json:"supplierUsedProductionCapacity"`
	SKC                            string `json:"skc"`
}

// TransferOrderData is the payload of a supplier transfer.
type TransferOrderData struct {
	NewOrderID      string            `json:"new_order_id"`
	OriginalOrderID string            `json:"original_order_id"`
	Status          string            `json:"status"`
	CreatedAt       envelope.DateTime `json:"created_at"`
}

// ContactMaterialData is the payload of a material department request.
type ContactMaterialData struct {
	RequestID            string        `json:"request_id"`
	MaterialDeptResponse string        `json:"material_dept_response"`
	EstimatedArrivalDate envelope.Date `json:"estimated_arrival_date"`
	CanExpedite          bool          `json:"can_expedite"`
}

// UpdateScheduleData is the payload of a schedule adjustment.
type UpdateScheduleData struct {
	ScheduleUpdated             bool          `json:"schedule_updated"`
	PriorityOrderStartDate      envelope.Date `json:"priority_order_start_date"`
	PriorityOrderCompletionDate envelope.Date `json:"priority_order_completion_date"`
	DelayedOrdersCount          int           `json:"delayed_orders_count"`
	NotificationSent            bool          `json:"notification_sent"`
}

// RecordExceptionData is the payload of a recorded exception.
type RecordExceptionData struct {
	RecordID   string            `json:"record_id"`
	OrderID    string            `json:"order_id"`
	RecordedAt envelope.DateTime `json:"recorded_at"`
}

// NewRandomOrderData builds the payload from a picked order and its
// supplier's capacity.
func NewRandomOrderData(o order.Order, supplier order.SupplierCapacity) RandomOrderData {
	return RandomOrderData{
		OrderID:                        o.ID(),
		OrderNumber:                    o.OrderNumber(),
		SupplierName:                   supplier.Name(),
		OrderCnt:                       o.RequiredQuantity(),
		SupplierProductionCapacity:     supplier.TotalCapacity(),
		SupplierUsedProductionCapacity: supplier.UsedCapacity(),
		SKC:                            o.SKC(),
	}
}

// NewTransferOrderData builds the payload from a saved transfer order.
func NewTransferOrderData(transfer order.Order, originalOrderID string) TransferOrderData {
	return TransferOrderData{
		NewOrderID:      transfer.ID(),
		OriginalOrderID: originalOrderID,
		Status:          string(transfer.Status()),
		CreatedAt:       envelope.NewDateTime(transfer.CreatedAt()),
	}
}

// NewContactMaterialData builds the payload from the material
// department's response.
func NewContactMaterialData(req order.MaterialRequest) ContactMaterialData {
	return ContactMaterialData{
		RequestID:            req.RequestID(),
		MaterialDeptResponse: req.Response(),
		EstimatedArrivalDate: envelope.NewDate(req.EstimatedArrival()),
		CanExpedite:          req.CanExpedite(),
	}
}

// NewUpdateScheduleData builds the payload from a schedule update.
// A successful update always reports schedule_updated true.
func NewUpdateScheduleData(update order.ScheduleUpdate) UpdateScheduleData {
	return UpdateScheduleData{
		ScheduleUpdated:             true,
		PriorityOrderStartDate:      envelope.NewDate(update.StartDate()),
		PriorityOrderCompletionDate: envelope.NewDate(update.CompletionDate()),
		DelayedOrdersCount:          update.DelayedOrders(),
		NotificationSent:            update.Notified(),
	}
}

// NewRecordExceptionData builds the payload from a stored exception
// record.
func NewRecordExceptionData(rec order.ExceptionRecord) RecordExceptionData {
	return RecordExceptionData{
		RecordID:   rec.RecordID(),
		OrderID:    rec.OrderID(),
		RecordedAt: envelope.NewDateTime(rec.RecordedAt()),
	}
}
