package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/notifications/service"
	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

const sentMessage = "Email sent successfully"

type FlightMailRequest struct {
	Email         string              `json:"email"`
	Name          string              `json:"name"`
	FlightDetails model.FlightDetails `json:"flightDetails"`
}

type HotelMailRequest struct {
	Email        string     `json:"email"`
	CustomerName string     `json:"customerName"`
	Hotel        string     `json:"hotel"`
	RoomClass    string     `json:"roomClass"`
	RoomCount    model.Text `json:"roomCount"`
	StartDate    model.Text `json:"startDate"`
	EndDate      model.Text `json:"endDate"`
	NumberOfDays model.Text `json:"numberOfDays"`
	TotalPrice   model.Text `json:"totalPrice"`
}

type NotificationHandler struct {
	service service.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

func (h *NotificationHandler) SendFlightMail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req FlightMailRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SendFlightMail", err)
		return
	}

	err := h.service.SendBookingConfirmation(r.Context(), service.KindFlight, req.Email, service.FlightConfirmation{
		Name:   req.Name,
		Flight: req.FlightDetails,
	})
	if err != nil {
		h.writeError(w, "SendFlightMail", err)
		return
	}
	h.writeSent(w, "SendFlightMail")
}

func (h *NotificationHandler) SendHotelMail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req HotelMailRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SendHotelMail", err)
		return
	}

	err := h.service.SendBookingConfirmation(r.Context(), service.KindHotel, req.Email, service.HotelConfirmation{
		CustomerName: req.CustomerName,
		Hotel:        req.Hotel,
		RoomClass:    req.RoomClass,
		RoomCount:    req.RoomCount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		NumberOfDays: req.NumberOfDays,
		TotalPrice:   req.TotalPrice,
	})
	if err != nil {
		h.writeError(w, "SendHotelMail", err)
		return
	}
	h.writeSent(w, "SendHotelMail")
}

func (h *NotificationHandler) writeSent(w http.ResponseWriter, handler string) {
	if err := httputil.WriteSuccess(w, httputil.MessageResponse{Message: sentMessage}); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *NotificationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/send-mail", h.SendFlightMail)
	router.POST("/send-hotel-mail", h.SendHotelMail)
}
