package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/catalog/service"
	"skybook/internal/catalog/storage"
	"skybook/pkg/logger"
)

const hotelsJSON = `[
  {"name": "Sea Breeze", "city_name": "Goa", "star_ratings": 4, "price_options": {"Deluxe": 5200, "Suite": 9100}},
  {"name": "Palm Court", "city_name": "GOA", "star_ratings": 5, "price_options": {"Standard": 3100, "Deluxe": 6400.5}},
  {"name": "Lake View", "city_name": "Udaipur", "star_ratings": 4, "price_options": {"Deluxe": 4100}}
]`

const flightsJSON = `[
  {"from": "Delhi", "to": "Goa", "departure_date": "2024-06-01", "travellers": {"class": "Economy"}, "special_fare_option": {"student": 3500}},
  {"from": "Mumbai", "to": "Goa", "departure_date": "2024-06-01", "travellers": {"class": "Business"}, "special_fare_option": {}}
]`

func setupRouter(t *testing.T) (*httprouter.Router, string) {
	t.Helper()
	dir := t.TempDir()
	flightsPath := filepath.Join(dir, "flights.json")
	hotelsPath := filepath.Join(dir, "hotels.json")
	if err := os.WriteFile(flightsPath, []byte(flightsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(hotelsPath, []byte(hotelsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := service.NewCatalogService(storage.NewFileStore(flightsPath), storage.NewFileStore(hotelsPath), logger.Discard())
	router := httprouter.New()
	NewCatalogHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router, flightsPath
}

func TestListHotels_GoaDeluxe(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotels?city=Goa&room_class=Deluxe", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var hotels []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &hotels); err != nil {
		t.Fatal(err)
	}
	if len(hotels) != 2 {
		t.Fatalf("expected 2 Goa hotels, got %d", len(hotels))
	}
	for _, h := range hotels {
		if !strings.EqualFold(h["city_name"].(string), "goa") {
			t.Errorf("non-Goa hotel returned: %v", h["city_name"])
		}
		prices := h["price_options"].(map[string]any)
		if len(prices) != 1 {
			t.Errorf("price_options should contain only Deluxe, got %v", prices)
		}
		if _, ok := prices["Deluxe"]; !ok {
			t.Errorf("Deluxe missing: %v", prices)
		}
	}
	if !strings.Contains(rec.Body.String(), "6400.5") {
		t.Errorf("number formatting not preserved: %s", rec.Body.String())
	}
}

func TestListFlights_SpecialFare(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flights?to=goa&special_fare_option=student", nil))

	var flights []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &flights); err != nil {
		t.Fatal(err)
	}
	if len(flights) != 1 || flights[0]["fare"] != float64(3500) {
		t.Errorf("unexpected flights: %v", flights)
	}
}

func TestAddFlight_PersistsToFile(t *testing.T) {
	router, flightsPath := setupRouter(t)

	body := `{"from":"Pune","to":"Delhi","price":4100.00}`
	req := httptest.NewRequest(http.MethodPost, "/flights", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"price":4100.00`) {
		t.Errorf("echoed record altered: %s", rec.Body.String())
	}

	raw, _ := os.ReadFile(flightsPath)
	var stored []map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != 3 || stored[2]["from"] != "Pune" {
		t.Errorf("flight not persisted: %v", stored)
	}
}

func TestAddFlight_BadJSON(t *testing.T) {
	router, _ := setupRouter(t)

	for _, body := range []string{`{"from":`, `[1,2]`} {
		req := httptest.NewRequest(http.MethodPost, "/flights", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestListFlights_MissingFile(t *testing.T) {
	svc := service.NewCatalogService(
		storage.NewFileStore(filepath.Join(t.TempDir(), "missing.json")),
		storage.NewFileStore(filepath.Join(t.TempDir(), "missing.json")),
		logger.Discard(),
	)
	router := httprouter.New()
	NewCatalogHandler(svc, logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flights", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error reading flights file") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
