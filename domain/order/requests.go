package order

import (
	"fmt"
	"time"
)

// MaterialType classifies what an expedite request to the material
// department concerns.
type MaterialType string

// MaterialType values.
const (
	MaterialFabric    MaterialType = "fabric"
	MaterialAccessory MaterialType = "accessory"
	MaterialOther     MaterialType = "other"
)

// ParseMaterialType validates a raw material type.
func ParseMaterialType(raw string) (MaterialType, error) {
	switch MaterialType(raw) {
	case MaterialFabric, MaterialAccessory, MaterialOther:
		return MaterialType(raw), nil
	default:
		return "", invalidf("unknown material type %q", raw)
	}
}

// Urgency is the priority of a material request.
type Urgency string

// Urgency values.
const (
	UrgencyUrgent Urgency = "urgent"
	UrgencyHigh   Urgency = "high"
	UrgencyNormal Urgency = "normal"
)

// ParseUrgency validates a raw urgency.
func ParseUrgency(raw string) (Urgency, error) {
	switch Urgency(raw) {
	case UrgencyUrgent, UrgencyHigh, UrgencyNormal:
		return Urgency(raw), nil
	default:
		return "", invalidf("unknown urgency %q", raw)
	}
}

// LeadDays returns how many days the material department needs before
// the material arrives at this urgency.
func (u Urgency) LeadDays() int {
	switch u {
	case UrgencyUrgent:
		return 1
	case UrgencyHigh:
		return 2
	default:
		return 3
	}
}

// CanExpedite reports whether the material department treats the
// request as expeditable.
func (u Urgency) CanExpedite() bool {
	return u != UrgencyNormal
}

// MaterialRequest is an accepted expedite request to the material
// department.
type MaterialRequest struct {
	requestID        string
	orderID          string
	materialType     MaterialType
	urgency          Urgency
	response         string
	estimatedArrival time.Time
	canExpedite      bool
}

// NewMaterialRequest files an expedite request for the given order.
// The arrival estimate follows the urgency's lead time from now.
func NewMaterialRequest(orderID string, materialType MaterialType, urgency Urgency, now time.Time) MaterialRequest {
	return MaterialRequest{
		requestID:        "MAT" + now.Format(idTimestamp),
		orderID:          orderID,
		materialType:     materialType,
		urgency:          urgency,
		response:         fmt.Sprintf("Material department accepted the %s %s request for order %s.", urgency, materialType, orderID),
		estimatedArrival: now.AddDate(0, 0, urgency.LeadDays()),
		canExpedite:      urgency.CanExpedite(),
	}
}

// RequestID returns the generated request ID.
func (r MaterialRequest) RequestID() string { return r.requestID }

// OrderID returns the order the request concerns.
func (r MaterialRequest) OrderID() string { return r.orderID }

// MaterialType returns what the request concerns.
func (r MaterialRequest) MaterialType() MaterialType { return r.materialType }

// Urgency returns the request urgency.
func (r MaterialRequest) Urgency() Urgency { return r.urgency }

// Response returns the material department's reply.
func (r MaterialRequest) Response() string { return r.response }

// EstimatedArrival returns when the material is expected.
func (r MaterialRequest) EstimatedArrival() time.Time { return r.estimatedArrival }

// CanExpedite reports whether the request can be expedited.
func (r MaterialRequest) CanExpedite() bool { return r.canExpedite }

// ScheduleUpdate is the outcome of reshuffling a supplier's production
// plan: the priority order is pulled forward and the listed orders are
// delayed.
type ScheduleUpdate struct {
	priorityOrderID string
	startDate       time.Time
	completionDate  time.Time
	delayedOrders   int
	notified        bool
}

// Production turnaround for a prioritized order: it enters production
// the next day and completes within three.
const (
	priorityStartOffsetDays      = 1
	priorityCompletionOffsetDays = 3
)

// NewScheduleUpdate reschedules production around the priority order.
func NewScheduleUpdate(priorityOrderID string, delayedOrders int, now time.Time) ScheduleUpdate {
	return ScheduleUpdate{
		priorityOrderID: priorityOrderID,
		startDate:       now.AddDate(0, 0, priorityStartOffsetDays),
		completionDate:  now.AddDate(0, 0, priorityCompletionOffsetDays),
		delayedOrders:   delayedOrders,
		notified:        true,
	}
}

// PriorityOrderID returns the order pulled forward.
func (s ScheduleUpdate) PriorityOrderID() string { return s.priorityOrderID }

// StartDate returns when the priority order enters production.
func (s ScheduleUpdate) StartDate() time.Time { return s.startDate }

// CompletionDate returns when the priority order is expected to finish.
func (s ScheduleUpdate) CompletionDate() time.Time { return s.completionDate }

// DelayedOrders returns how many orders were pushed back.
func (s ScheduleUpdate) DelayedOrders() int { return s.delayedOrders }

// Notified reports whether the affected parties were notified.
func (s ScheduleUpdate) Notified() bool { return s.notified }

// ExceptionRecord documents a problem that could not be resolved
// automatically and awaits manual handling.
type ExceptionRecord struct {
	recordID        string
	orderID         string
	supplierID      string
	exceptionType   string
	exceptionDetail string
	handlerName     string
	recordedAt      time.Time
}

// NewExceptionRecord files an exception for manual follow-up.
func NewExceptionRecord(orderID, supplierID, exceptionType, exceptionDetail, handlerName string, now time.Time) ExceptionRecord {
	return ExceptionRecord{
		recordID:        "EXC" + now.Format(idTimestamp),
		orderID:         orderID,
		supplierID:      supplierID,
		exceptionType:   exceptionType,
		exceptionDetail: exceptionDetail,
		handlerName:     handlerName,
		recordedAt:      now,
	}
}

// ReconstructExceptionRecord rebuilds a stored ExceptionRecord.
func ReconstructExceptionRecord(
	recordID string,
	orderID string,
	supplierID string,
	exceptionType string,
	exceptionDetail string,
	handlerName string,
	recordedAt time.Time,
) ExceptionRecord {
	return ExceptionRecord{
		recordID:        recordID,
		orderID:         orderID,
		supplierID:      supplierID,
		exceptionType:   exceptionType,
		exceptionDetail: exceptionDetail,
		handlerName:     handlerName,
		recordedAt:      recordedAt,
	}
}

// RecordID returns the generated record ID.
func (r ExceptionRecord) RecordID() string { return r.recordID }

// OrderID returns the affected order.
func (r ExceptionRecord) OrderID() string { return r.orderID }

// SupplierID returns the affected supplier.
func (r ExceptionRecord) SupplierID() string { return r.supplierID }

// ExceptionType returns the kind of exception.
func (r ExceptionRecord) ExceptionType() string { return r.exceptionType }

// ExceptionDetail returns the free-form description.
func (r ExceptionRecord) ExceptionDetail() string { return r.exceptionDetail }

// HandlerName returns who will handle the exception.
func (r ExceptionRecord) HandlerName() string { return r.handlerName }

// RecordedAt returns when the exception was recorded.
func (r ExceptionRecord) RecordedAt() time.Time { return r.recordedAt }
