package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/payments/service"
	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
)

const (
	legitMessage    = "Transaction is legit!"
	notLegitMessage = "Transaction is not legit!"
)

type LegitResponse struct {
	Msg       string `json:"msg"`
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
}

type RejectedResponse struct {
	Msg string `json:"msg"`
}

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.OrderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "CreateOrder", err)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		h.writeError(w, "CreateOrder", err)
		return
	}

	if err := httputil.WriteSuccess(w, order); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateOrder", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.ValidateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	result, err := h.service.ValidateAndRecord(r.Context(), req)
	if err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	if !result.Legit {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, RejectedResponse{Msg: notLegitMessage}); err != nil {
			h.log.Error("failed to write rejection response", "handler", "Validate", "operation", "WriteJSON", "error", err)
		}
		return
	}

	resp := LegitResponse{Msg: legitMessage, OrderID: result.OrderID, PaymentID: result.PaymentID}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/order", h.CreateOrder)
	router.POST("/validate", h.Validate)
}
