package persistence

import (
	"github.com/assistant-mcp/knowd/domain/order"
)

// OrderMapper maps between domain Order and persistence OrderModel.
type OrderMapper struct{}

// ToDomain converts an OrderModel to a domain Order.
func (m OrderMapper) ToDomain(e OrderModel) order.Order {
	return order.NewOrder(
		e.ID,
		e.OrderNumber,
		e.SupplierID,
		e.ProductName,
		e.SKC,
		e.RequiredQuantity,
		e.PriorityScore,
		order.Status(e.Status),
		e.CreatedAt,
	)
}

// ToModel converts a domain Order to an OrderModel.
func (m OrderMapper) ToModel(o order.Order) OrderModel {
	return OrderModel{
		ID:               o.ID(),
		OrderNumber:      o.OrderNumber(),
		SupplierID:       o.SupplierID(),
		ProductName:      o.ProductName(),
		SKC:              o.SKC(),
		RequiredQuantity: o.RequiredQuantity(),
		PriorityScore:    o.PriorityScore(),
		Status:           string(o.Status()),
		CreatedAt:        o.CreatedAt(),
	}
}

// SupplierMapper maps between domain SupplierCapacity and persistence SupplierModel.
type SupplierMapper struct{}

// ToDomain converts a SupplierModel to a domain SupplierCapacity.
func (m SupplierMapper) ToDomain(e SupplierModel) order.SupplierCapacity {
	return order.NewSupplierCapacity(e.ID, e.Name, e.TotalCapacity, e.UsedCapacity)
}

// ToModel converts a domain SupplierCapacity to a SupplierModel.
func (m SupplierMapper) ToModel(s order.SupplierCapacity) SupplierModel {
	return SupplierModel{
		ID:            s.ID(),
		Name:          s.Name(),
		TotalCapacity: s.TotalCapacity(),
		UsedCapacity:  s.UsedCapacity(),
	}
}

// ExceptionMapper maps between domain ExceptionRecord and persistence ExceptionRecordModel.
type ExceptionMapper struct{}

// ToDomain converts an ExceptionRecordModel to a domain ExceptionRecord.
func (m ExceptionMapper) ToDomain(e ExceptionRecordModel) order.ExceptionRecord {
	return order.ReconstructExceptionRecord(
		e.RecordID,
		e.OrderID,
		e.SupplierID,
		e.ExceptionType,
		e.ExceptionDetail,
		e.HandlerName,
		e.RecordedAt,
	)
}

// ToModel converts a domain ExceptionRecord to an ExceptionRecordModel.
func (m ExceptionMapper) ToModel(r order.ExceptionRecord) ExceptionRecordModel {
	return ExceptionRecordModel{
		RecordID:        r.RecordID(),
		OrderID:         r.OrderID(),
		SupplierID:      r.SupplierID(),
		ExceptionType:   r.ExceptionType(),
		ExceptionDetail: r.ExceptionDetail(),
		HandlerName:     r.HandlerName(),
		RecordedAt:      r.RecordedAt(),
	}
}
