package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

type mockPassengerService struct {
	saveFunc func(ctx context.Context, p *model.Passenger) (*model.Passenger, error)
	getFunc  func(ctx context.Context, id string) (*model.Passenger, error)
}

func (m *mockPassengerService) Save(ctx context.Context, p *model.Passenger) (*model.Passenger, error) {
	return m.saveFunc(ctx, p)
}

func (m *mockPassengerService) GetByBookingID(ctx context.Context, id string) (*model.Passenger, error) {
	return m.getFunc(ctx, id)
}

func newRouter(svc *mockPassengerService) *httprouter.Router {
	router := httprouter.New()
	NewPassengerHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestSave_Created(t *testing.T) {
	svc := &mockPassengerService{
		saveFunc: func(_ context.Context, p *model.Passenger) (*model.Passenger, error) {
			p.ID = primitive.NewObjectID()
			p.BookingID = "0123456789abcdef0123456789abcdef"
			return p, nil
		},
	}

	body := `{"name":"Asha","age":31,"flightDetails":{"from":"Delhi","to":"Goa"},"travelInsurance":false}`
	req := httptest.NewRequest(http.MethodPost, "/save-passenger-details", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message   string         `json:"message"`
		Passenger map[string]any `json:"passenger"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "Passenger details saved successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Passenger["bookingId"] != "0123456789abcdef0123456789abcdef" || resp.Passenger["_id"] == nil {
		t.Errorf("passenger = %v", resp.Passenger)
	}
	if resp.Passenger["travelInsurance"] != false {
		t.Errorf("explicit false should be kept, got %v", resp.Passenger["travelInsurance"])
	}
}

func TestSave_StringTypedFields(t *testing.T) {
	var got *model.Passenger
	svc := &mockPassengerService{
		saveFunc: func(_ context.Context, p *model.Passenger) (*model.Passenger, error) {
			got = p
			return p, nil
		},
	}

	body := `{"name":"Asha","age":"31","travelInsurance":"true"}`
	req := httptest.NewRequest(http.MethodPost, "/save-passenger-details", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got.Age == nil || *got.Age != 31 {
		t.Errorf("age = %v, want 31", got.Age)
	}
	if got.TravelInsurance == nil || !bool(*got.TravelInsurance) {
		t.Errorf("travelInsurance = %v, want true", got.TravelInsurance)
	}
	if !strings.Contains(rec.Body.String(), `"age":31`) {
		t.Errorf("age should be echoed as a number: %s", rec.Body.String())
	}
}

func TestSave_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"malformed body", `{"name":`, nil, http.StatusBadRequest},
		{"non-numeric age", `{"age":"thirty"}`, nil, http.StatusBadRequest},
		{"validation", `{"email":"x"}`, apperrors.Validation("Passenger validation failed", nil), http.StatusUnprocessableEntity},
		{"store failure", `{}`, apperrors.Persistence("Error saving passenger details", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPassengerService{
				saveFunc: func(context.Context, *model.Passenger) (*model.Passenger, error) { return nil, tt.err },
			}
			req := httptest.NewRequest(http.MethodPost, "/save-passenger-details", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetByBookingID_NotFound(t *testing.T) {
	svc := &mockPassengerService{
		getFunc: func(_ context.Context, id string) (*model.Passenger, error) {
			return nil, apperrors.NotFoundWithID("Passenger", id)
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/passengers/abc", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Passenger not found") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
