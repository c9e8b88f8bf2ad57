package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	catalogerrors "skybook/internal/catalog/errors"
	"skybook/internal/catalog/storage"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
)

// FlightFilter fields are optional; empty means "do not filter".
type FlightFilter struct {
	From              string
	To                string
	DepartureDate     string
	ReturnDate        string
	TravellersClass   string
	SpecialFareOption string
}

type HotelFilter struct {
	City        string
	StarRatings string
	RoomClass   string
}

type CatalogService interface {
	ListFlights(ctx context.Context, filter FlightFilter) ([]storage.Record, error)
	AddFlight(ctx context.Context, flight storage.Record) (storage.Record, error)
	ListHotels(ctx context.Context, filter HotelFilter) ([]storage.Record, error)
}

type catalogService struct {
	flights storage.Store
	hotels  storage.Store
	log     *logger.Logger

	// flightsMu serializes read-modify-write cycles on the flights file.
	flightsMu sync.Mutex
}

func NewCatalogService(flights, hotels storage.Store, log *logger.Logger) CatalogService {
	return &catalogService{
		flights: flights,
		hotels:  hotels,
		log:     log,
	}
}

func (s *catalogService) ListFlights(ctx context.Context, filter FlightFilter) ([]storage.Record, error) {
	flights, err := s.flights.Load(ctx)
	if err != nil {
		return nil, s.ioError(ctx, "Error reading flights file", err)
	}

	matches := make([]storage.Record, 0, len(flights))
	for _, flight := range flights {
		if !matchesFlight(flight, filter) {
			continue
		}
		if filter.SpecialFareOption != "" {
			fares, _ := flight["special_fare_option"].(map[string]any)
			annotated := copyRecord(flight)
			annotated["fare"] = fares[filter.SpecialFareOption]
			flight = annotated
		}
		matches = append(matches, flight)
	}

	return matches, nil
}

func (s *catalogService) AddFlight(ctx context.Context, flight storage.Record) (storage.Record, error) {
	if flight == nil {
		return nil, apperrors.InvalidInput("Flight must be a JSON object")
	}

	s.flightsMu.Lock()
	defer s.flightsMu.Unlock()

	flights, err := s.flights.Load(ctx)
	if err != nil {
		return nil, s.ioError(ctx, "Error reading flights file", err)
	}

	flights = append(flights, flight)
	if err := s.flights.Save(ctx, flights); err != nil {
		return nil, s.ioError(ctx, "Error writing flights file", err)
	}

	s.log.WithRequest(ctx).Info("Flight added",
		"from", flight["from"],
		"to", flight["to"],
		"total_flights", len(flights),
	)
	return flight, nil
}

func (s *catalogService) ListHotels(ctx context.Context, filter HotelFilter) ([]storage.Record, error) {
	hotels, err := s.hotels.Load(ctx)
	if err != nil {
		return nil, s.ioError(ctx, "Error reading hotels file", err)
	}

	matches := make([]storage.Record, 0, len(hotels))
	for _, hotel := range hotels {
		if filter.City != "" && !fieldEqualFold(hotel, filter.City, "city_name") {
			continue
		}
		if filter.StarRatings != "" && !looseEqual(hotel["star_ratings"], filter.StarRatings) {
			continue
		}
		if filter.RoomClass != "" {
			hotel = restrictPriceOptions(hotel, filter.RoomClass)
		}
		matches = append(matches, hotel)
	}

	return matches, nil
}

func (s *catalogService) ioError(ctx context.Context, message string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout("Request cancelled")
	}
	s.log.WithRequest(ctx).Error(message, "error", err)
	if errors.Is(err, catalogerrors.ErrRead) || errors.Is(err, catalogerrors.ErrWrite) {
		return apperrors.IO(message, err)
	}
	return apperrors.IO(message, fmt.Errorf("catalog store: %w", err))
}

func matchesFlight(flight storage.Record, f FlightFilter) bool {
	if f.From != "" && !fieldEqualFold(flight, f.From, "from") {
		return false
	}
	if f.To != "" && !fieldEqualFold(flight, f.To, "to") {
		return false
	}
	if f.DepartureDate != "" && !fieldEqualFold(flight, f.DepartureDate, "departure_date") {
		return false
	}
	if f.ReturnDate != "" && !fieldEqualFold(flight, f.ReturnDate, "return_date") {
		return false
	}
	if f.TravellersClass != "" && !fieldEqualFold(flight, f.TravellersClass, "travellers", "class") {
		return false
	}
	if f.SpecialFareOption != "" {
		fares, ok := flight["special_fare_option"].(map[string]any)
		if !ok {
			return false
		}
		if _, ok := fares[f.SpecialFareOption]; !ok {
			return false
		}
	}
	return true
}

// fieldEqualFold walks path through nested objects. Missing or non-string
// fields never match.
func fieldEqualFold(rec storage.Record, want string, path ...string) bool {
	var cur any = map[string]any(rec)
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		if cur, ok = obj[key]; !ok {
			return false
		}
	}

	switch v := cur.(type) {
	case string:
		return strings.EqualFold(v, want)
	case json.Number:
		return strings.EqualFold(v.String(), want)
	default:
		return false
	}
}

// looseEqual compares numerically when both sides are numbers, else as text.
func looseEqual(have any, want string) bool {
	var haveStr string
	switch v := have.(type) {
	case json.Number:
		haveStr = v.String()
	case string:
		haveStr = v
	case float64:
		haveStr = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return false
	}

	a, errA := strconv.ParseFloat(strings.TrimSpace(haveStr), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(want), 64)
	if errA == nil && errB == nil {
		return a == b
	}
	return haveStr == want
}

func restrictPriceOptions(hotel storage.Record, roomClass string) storage.Record {
	out := copyRecord(hotel)
	restricted := map[string]any{}
	if prices, ok := hotel["price_options"].(map[string]any); ok {
		if price, ok := prices[roomClass]; ok {
			restricted[roomClass] = price
		}
	}
	out["price_options"] = restricted
	return out
}

func copyRecord(rec storage.Record) storage.Record {
	out := make(storage.Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	return out
}
