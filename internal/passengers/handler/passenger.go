package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/passengers/service"
	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

const savedMessage = "Passenger details saved successfully"

type SaveResponse struct {
	Message   string           `json:"message"`
	Passenger *model.Passenger `json:"passenger"`
}

type PassengerHandler struct {
	service service.PassengerService
	log     *logger.Logger
}

func NewPassengerHandler(service service.PassengerService, log *logger.Logger) *PassengerHandler {
	return &PassengerHandler{
		service: service,
		log:     log,
	}
}

func (h *PassengerHandler) Save(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var passenger model.Passenger
	if err := httputil.DecodeJSON(r, &passenger); err != nil {
		h.writeError(w, "Save", err)
		return
	}

	saved, err := h.service.Save(r.Context(), &passenger)
	if err != nil {
		h.writeError(w, "Save", err)
		return
	}

	if err := httputil.WriteCreated(w, SaveResponse{Message: savedMessage, Passenger: saved}); err != nil {
		h.log.Error("failed to write created response", "handler", "Save", "operation", "WriteCreated", "error", err)
	}
}

func (h *PassengerHandler) GetByBookingID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	passenger, err := h.service.GetByBookingID(r.Context(), ps.ByName("bookingId"))
	if err != nil {
		h.writeError(w, "GetByBookingID", err)
		return
	}

	if err := httputil.WriteSuccess(w, passenger); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByBookingID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PassengerHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PassengerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/save-passenger-details", h.Save)
	router.GET("/passengers/:bookingId", h.GetByBookingID)
}
