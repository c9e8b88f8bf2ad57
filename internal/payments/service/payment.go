package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skybook/internal/events"
	paymentserrors "skybook/internal/payments/errors"
	"skybook/internal/payments/gateway"
	"skybook/internal/payments/repository"
	"skybook/pkg/config"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/model"
)

type OrderRequest struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
	Receipt  string      `json:"receipt,omitempty"`
}

type ValidateRequest struct {
	OrderID        string               `json:"razorpay_order_id"`
	PaymentID      string               `json:"razorpay_payment_id"`
	Signature      string               `json:"razorpay_signature"`
	PaymentDetails model.PaymentDetails `json:"paymentDetails"`
}

// VerificationResult is returned for both outcomes. A mismatch is not an error.
type VerificationResult struct {
	Legit     bool
	OrderID   string
	PaymentID string
	Payment   *model.Payment
}

type PaymentService interface {
	CreateOrder(ctx context.Context, req OrderRequest) (json.RawMessage, error)
	Verify(orderID, paymentID, signature string) bool
	ValidateAndRecord(ctx context.Context, req ValidateRequest) (*VerificationResult, error)
}

type paymentService struct {
	gateway gateway.Gateway
	repo    repository.PaymentRepository
	signer  *Signer
	events  events.Publisher
	cfg     *config.Config
}

func NewPaymentService(
	gw gateway.Gateway,
	repo repository.PaymentRepository,
	signer *Signer,
	publisher events.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		gateway: gw,
		repo:    repo,
		signer:  signer,
		events:  publisher,
		cfg:     cfg,
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, req OrderRequest) (json.RawMessage, error) {
	log := s.cfg.Log.WithRequest(ctx)

	amount, err := req.Amount.Int64()
	if err != nil || amount <= 0 {
		return nil, apperrors.InvalidInput("Amount must be a positive integer in the currency's smallest unit").
			WithDetails(map[string]any{"amount": req.Amount.String()})
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return nil, apperrors.InvalidInput("Currency is required")
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  strings.TrimSpace(req.Receipt),
	})
	if err != nil {
		log.Error("Failed to create gateway order",
			"amount", amount,
			"currency", currency,
			"error", err,
		)
		return nil, apperrors.Gateway("Error creating order", err)
	}

	log.Info("Gateway order created", "amount", amount, "currency", currency)
	return order, nil
}

func (s *paymentService) Verify(orderID, paymentID, signature string) bool {
	return s.signer.Verify(orderID, paymentID, signature)
}

func (s *paymentService) ValidateAndRecord(ctx context.Context, req ValidateRequest) (*VerificationResult, error) {
	log := s.cfg.Log.WithRequest(ctx)

	if !s.Verify(req.OrderID, req.PaymentID, req.Signature) {
		log.Warn("Signature mismatch",
			"order_id", req.OrderID,
			"payment_id", req.PaymentID,
		)
		return &VerificationResult{Legit: false, OrderID: req.OrderID, PaymentID: req.PaymentID}, nil
	}

	payment := &model.Payment{
		ID:                primitive.NilObjectID,
		PaymentDetails:    req.PaymentDetails,
		RazorpayOrderID:   req.OrderID,
		RazorpayPaymentID: req.PaymentID,
		RazorpaySignature: req.Signature,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		log.Error("Failed to save payment",
			"order_id", req.OrderID,
			"payment_id", req.PaymentID,
			"error", err,
		)
		if errors.Is(err, paymentserrors.ErrDuplicatePayment) {
			return nil, apperrors.Conflict("Payment already recorded")
		}
		return nil, apperrors.Persistence("Failed to save payment details", err)
	}

	log.Info("Payment verified",
		"id", payment.ID.Hex(),
		"order_id", payment.RazorpayOrderID,
		"payment_id", payment.RazorpayPaymentID,
	)
	s.events.PaymentVerified(ctx, payment)

	return &VerificationResult{
		Legit:     true,
		OrderID:   payment.RazorpayOrderID,
		PaymentID: payment.RazorpayPaymentID,
		Payment:   payment,
	}, nil
}
