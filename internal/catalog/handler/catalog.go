package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/catalog/service"
	"skybook/internal/catalog/storage"
	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) ListFlights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	filter := service.FlightFilter{
		From:              q.Get("from"),
		To:                q.Get("to"),
		DepartureDate:     q.Get("departure_date"),
		ReturnDate:        q.Get("return_date"),
		TravellersClass:   q.Get("travellers_class"),
		SpecialFareOption: q.Get("special_fare_option"),
	}

	flights, err := h.service.ListFlights(r.Context(), filter)
	if err != nil {
		h.writeError(w, "ListFlights", err)
		return
	}

	if err := httputil.WriteSuccess(w, flights); err != nil {
		h.log.Error("failed to write success response", "handler", "ListFlights", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) AddFlight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var flight storage.Record
	if err := httputil.DecodeJSONNumbers(r, &flight); err != nil {
		h.writeError(w, "AddFlight", err)
		return
	}

	added, err := h.service.AddFlight(r.Context(), flight)
	if err != nil {
		h.writeError(w, "AddFlight", err)
		return
	}

	if err := httputil.WriteSuccess(w, added); err != nil {
		h.log.Error("failed to write success response", "handler", "AddFlight", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) ListHotels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	filter := service.HotelFilter{
		City:        q.Get("city"),
		StarRatings: q.Get("star_ratings"),
		RoomClass:   q.Get("room_class"),
	}

	hotels, err := h.service.ListHotels(r.Context(), filter)
	if err != nil {
		h.writeError(w, "ListHotels", err)
		return
	}

	if err := httputil.WriteSuccess(w, hotels); err != nil {
		h.log.Error("failed to write success response", "handler", "ListHotels", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/flights", h.ListFlights)
	router.POST("/flights", h.AddFlight)
	router.GET("/hotels", h.ListHotels)
}
