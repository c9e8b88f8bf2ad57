package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skybook/internal/events"
	"skybook/internal/payments/gateway"
	"skybook/internal/payments/service"
	"skybook/pkg/config"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

const testSecret = "rzp_test_secret"

type memoryPaymentRepository struct {
	mu       sync.Mutex
	payments []*model.Payment
	err      error
}

func (m *memoryPaymentRepository) Create(_ context.Context, p *model.Payment) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.payments = append(m.payments, p)
	return nil
}

func (m *memoryPaymentRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

func stubGateway(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gateway.OrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_stub_1",
			"entity":   "order",
			"amount":   req.Amount,
			"currency": req.Currency,
			"status":   "created",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(t *testing.T, gatewayURL string, repo *memoryPaymentRepository) *httprouter.Router {
	t.Helper()
	cfg := &config.Config{Log: logger.Discard()}
	gw := gateway.NewRazorpayGateway(gatewayURL, "rzp_key", testSecret, time.Second)
	svc := service.NewPaymentService(gw, repo, service.NewSigner(testSecret), events.NopPublisher{}, cfg)

	router := httprouter.New()
	NewPaymentHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func post(router http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrderThenValidate_Legit(t *testing.T) {
	repo := &memoryPaymentRepository{}
	router := newRouter(t, stubGateway(t).URL, repo)

	rec := post(router, "/order", map[string]any{"amount": 50000, "currency": "INR", "receipt": "rcpt_1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var order map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	orderID, _ := order["id"].(string)
	require.Equal(t, "order_stub_1", orderID)
	assert.EqualValues(t, 50000, order["amount"])

	rec = post(router, "/validate", map[string]any{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_29QQoUBi66xm2f",
		"razorpay_signature":  service.NewSigner(testSecret).Sign(orderID, "pay_29QQoUBi66xm2f"),
		"paymentDetails": map[string]any{
			"hotel":        "Sea View",
			"roomClass":    "Deluxe",
			"roomCount":    1,
			"startDate":    "2024-12-20",
			"endDate":      "2024-12-23",
			"numberOfDays": 3,
			"totalPrice":   15000,
			"customerName": "Asha Rao",
			"email":        "asha@example.com",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Transaction is legit!", resp["msg"])
	assert.Equal(t, orderID, resp["orderId"])
	assert.Equal(t, "pay_29QQoUBi66xm2f", resp["paymentId"])
	assert.NotContains(t, resp, "signature")

	require.Equal(t, 1, repo.count())
	stored := repo.payments[0]
	assert.Equal(t, "Deluxe", stored.RoomClass)
	assert.Equal(t, "2024-12-20", stored.StartDate.String())
}

func TestValidate_StringTypedPaymentDetails(t *testing.T) {
	repo := &memoryPaymentRepository{}
	router := newRouter(t, stubGateway(t).URL, repo)

	rec := post(router, "/validate", map[string]any{
		"razorpay_order_id":   "order_stub_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  service.NewSigner(testSecret).Sign("order_stub_1", "pay_1"),
		"paymentDetails": map[string]any{
			"roomCount":    "2",
			"numberOfDays": "3",
			"totalPrice":   "15000.50",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, 1, repo.count())
	stored := repo.payments[0]
	require.NotNil(t, stored.RoomCount)
	require.NotNil(t, stored.NumberOfDays)
	require.NotNil(t, stored.TotalPrice)
	assert.EqualValues(t, 2, *stored.RoomCount)
	assert.EqualValues(t, 3, *stored.NumberOfDays)
	assert.InDelta(t, 15000.50, float64(*stored.TotalPrice), 1e-9)
}

func TestValidate_SignatureOffByOne(t *testing.T) {
	repo := &memoryPaymentRepository{}
	router := newRouter(t, stubGateway(t).URL, repo)

	sig := service.NewSigner(testSecret).Sign("order_stub_1", "pay_1")
	last := sig[len(sig)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	tampered := sig[:len(sig)-1] + string(replacement)

	rec := post(router, "/validate", map[string]any{
		"razorpay_order_id":   "order_stub_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  tampered,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg":"Transaction is not legit!"}`, rec.Body.String())
	assert.Zero(t, repo.count())
}

func TestValidate_StoreFailure(t *testing.T) {
	repo := &memoryPaymentRepository{err: errors.New("no reachable servers")}
	router := newRouter(t, stubGateway(t).URL, repo)

	rec := post(router, "/validate", map[string]any{
		"razorpay_order_id":   "o",
		"razorpay_payment_id": "p",
		"razorpay_signature":  service.NewSigner(testSecret).Sign("o", "p"),
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to save payment details", resp["error"])
	assert.NotContains(t, rec.Body.String(), "no reachable servers")
}

func TestOrder_InvalidAmount(t *testing.T) {
	router := newRouter(t, stubGateway(t).URL, &memoryPaymentRepository{})

	rec := post(router, "/order", map[string]any{"amount": 0, "currency": "INR"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrder_GatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	}))
	defer srv.Close()
	router := newRouter(t, srv.URL, &memoryPaymentRepository{})

	rec := post(router, "/order", map[string]any{"amount": 100, "currency": "INR"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Error creating order", resp["error"])
}

func TestValidate_BadJSON(t *testing.T) {
	router := newRouter(t, stubGateway(t).URL, &memoryPaymentRepository{})

	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
