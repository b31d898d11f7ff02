package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assistant-mcp/knowd"
	"github.com/assistant-mcp/knowd/application/service"
	"github.com/assistant-mcp/knowd/domain/order"
	"github.com/assistant-mcp/knowd/infrastructure/api/envelope"
	"github.com/assistant-mcp/knowd/infrastructure/api/middleware"
	"github.com/assistant-mcp/knowd/infrastructure/api/v1/dto"
)

// SupplierOrdersRouter handles supplier order API endpoints.
type SupplierOrdersRouter struct {
	client *knowd.Client
	logger *slog.Logger
}

// NewSupplierOrdersRouter creates a new SupplierOrdersRouter.
func NewSupplierOrdersRouter(client *knowd.Client) *SupplierOrdersRouter {
	return &SupplierOrdersRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for supplier order endpoints.
func (r *SupplierOrdersRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/random-order", r.RandomOrder)
	router.Post("/transfer-supplier", r.TransferSupplier)
	router.Post("/contact-material", r.ContactMaterial)
	router.Post("/update-schedule", r.UpdateSchedule)
	router.Post("/record-exception", r.RecordException)

	return router
}

// RandomOrder handles GET /supplierOrder/random-order.
//
//	@Summary		Pick a random outage order
//	@Description	Picks a random in-production order for size-outage handling
//	@Tags			supplier-orders
//	@Produce		json
//	@Success		200	{object}	envelope.Response{data=dto.RandomOrderData}
//	@Failure		404	{object}	envelope.Response
//	@Failure		500	{object}	envelope.Response
//	@Router			/supplierOrder/random-order [get]
func (r *SupplierOrdersRouter) RandomOrder(w http.ResponseWriter, req *http.Request) {
	picked, err := r.client.Orders.RandomOutageOrder(req.Context())
	if err != nil {
		r.writeFailure(w, req, err)
		return
	}

	envelope.Write(w, http.StatusOK, envelope.OK(dto.NewRandomOrderData(picked.Order, picked.Supplier)))
}

// TransferSupplier handles POST /supplierOrder/transfer-supplier.
//
//	@Summary		Transfer an order to a new supplier
//	@Description	Creates a transfer order awaiting supplier confirmation
//	@Tags			supplier-orders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.TransferOrderRequest	true	"Transfer request"
//	@Success		200		{object}	envelope.Response{data=dto.TransferOrderData}
//	@Failure		400		{object}	envelope.Response
//	@Failure		404		{object}	envelope.Response
//	@Security		APIKeyAuth
//	@Router			/supplierOrder/transfer-supplier [post]
func (r *SupplierOrdersRouter) TransferSupplier(w http.ResponseWriter, req *http.Request) {
	var body dto.TransferOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		r.writeBadBody(w, err)
		return
	}

	transfer, err := r.client.Orders.Transfer(req.Context(), service.TransferParams{
		OrderID:       body.OrderID,
		NewSupplierID: body.NewSupplierID,
		Quantity:      body.Quantity,
		Reason:        body.Reason,
	})
	if err != nil {
		r.writeFailure(w, req, err)
		return
	}

	envelope.Write(w, http.StatusOK, envelope.OK(dto.NewTransferOrderData(transfer, body.OrderID)))
}

// ContactMaterial handles POST /supplierOrder/contact-material.
//
//	@Summary		Contact the material department
//	@Description	Requests material preparation for an order
//	@Tags			supplier-orders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.ContactMaterialRequest	true	"Material request"
//	@Success		200		{object}	envelope.Response{data=dto.ContactMaterialData}
//	@Failure		400		{object}	envelope.Response
//	@Failure		404		{object}	envelope.Response
//	@Security		APIKeyAuth
//	@Router			/supplierOrder/contact-material [post]
func (r *SupplierOrdersRouter) ContactMaterial(w http.ResponseWriter, req *http.Request) {
	var body dto.ContactMaterialRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		r.writeBadBody(w, err)
		return
	}

	request, err := r.client.Orders.ContactMaterial(req.Context(), service.MaterialParams{
		OrderID:      body.OrderID,
		MaterialType: body.MaterialType,
		Urgency:      body.Urgency,
	})
	if err != nil {
		r.writeFailure(w, req, err)
		return
	}

	envelope.Write(w, http.StatusOK, envelope.OK(dto.NewContactMaterialData(request)))
}

// UpdateSchedule handles POST /supplierOrder/update-schedule.
//
//	@Summary		Reprioritize a production schedule
//	@Description	Moves an order to the front of a supplier's schedule
//	@Tags			supplier-orders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.UpdateScheduleRequest	true	"Schedule update"
//	@Success		200		{object}	envelope.Response{data=dto.UpdateScheduleData}
//	@Failure		400		{object}	envelope.Response
//	@Failure		404		{object}	envelope.Response
//	@Security		APIKeyAuth
//	@Router			/supplierOrder/update-schedule [post]
func (r *SupplierOrdersRouter) UpdateSchedule(w http.ResponseWriter, req *http.Request) {
	var body dto.UpdateScheduleRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		r.writeBadBody(w, err)
		return
	}

	update, err := r.client.Orders.UpdateSchedule(req.Context(), service.ScheduleParams{
		SupplierID:      body.SupplierID,
		PriorityOrderID: body.PriorityOrderID,
		DelayedOrderIDs: body.DelayedOrderIDs,
		DelayDays:       body.DelayDays,
	})
	if err != nil {
		r.writeFailure(w, req, err)
		return
	}

	envelope.Write(w, http.StatusOK, envelope.OK(dto.NewUpdateScheduleData(update)))
}

// RecordException handles POST /supplierOrder/record-exception.
//
//	@Summary		Record a handled exception
//	@Description	Stores a production exception for audit
//	@Tags			supplier-orders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RecordExceptionRequest	true	"Exception record"
//	@Success		200		{object}	envelope.Response{data=dto.RecordExceptionData}
//	@Failure		400		{object}	envelope.Response
//	@Security		APIKeyAuth
//	@Router			/supplierOrder/record-exception [post]
func (r *SupplierOrdersRouter) RecordException(w http.ResponseWriter, req *http.Request) {
	var body dto.RecordExceptionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		r.writeBadBody(w, err)
		return
	}

	rec, err := r.client.Orders.RecordException(req.Context(), service.ExceptionParams{
		OrderID:         body.OrderID,
		SupplierID:      body.SupplierID,
		ExceptionType:   body.ExceptionType,
		ExceptionDetail: body.ExceptionDetail,
		HandlerName:     body.HandlerName,
	})
	if err != nil {
		r.writeFailure(w, req, err)
		return
	}

	envelope.Write(w, http.StatusOK, envelope.OK(dto.NewRecordExceptionData(rec)))
}

// writeBadBody rejects an undecodable request body.
func (r *SupplierOrdersRouter) writeBadBody(w http.ResponseWriter, err error) {
	envelope.Write(w, http.StatusBadRequest,
		envelope.Fail(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err)))
}

// writeFailure maps a service error onto a typed API error and writes
// the failure envelope. The envelope code mirrors the HTTP status.
func (r *SupplierOrdersRouter) writeFailure(w http.ResponseWriter, req *http.Request, err error) {
	classified := classifyOrderError(err)

	var apiErr *middleware.APIError
	var srvErr *middleware.ServerError
	switch {
	case errors.As(classified, &apiErr):
		envelope.Write(w, apiErr.Code(), envelope.Fail(apiErr.Code(), apiErr.Message()))
	case errors.As(classified, &srvErr):
		r.logger.Error("supplier order request failed",
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
		)
		envelope.Write(w, srvErr.StatusCode(), envelope.Fail(srvErr.StatusCode(), srvErr.Message()))
	}
}

// classifyOrderError translates order domain errors into typed API
// errors carrying the status code.
func classifyOrderError(err error) error {
	switch {
	case errors.Is(err, order.ErrNoOutageOrders),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrSupplierNotFound):
		return middleware.NewAPIError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, order.ErrInvalidRequest):
		return middleware.NewAPIError(http.StatusBadRequest, err.Error(), err)
	default:
		return middleware.NewServerError(http.StatusInternalServerError, "internal server error")
	}
}
