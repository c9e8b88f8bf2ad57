package events

import (
	"context"

	"skybook/pkg/kafka"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

const (
	TypePassengerSaved  = "passenger.saved"
	TypePaymentVerified = "payment.verified"

	SchemaVersion = "1"
)

// Publisher announces booking milestones. Implementations are best effort:
// failures are logged and never surface to the caller.
type Publisher interface {
	PassengerSaved(ctx context.Context, passenger *model.Passenger)
	PaymentVerified(ctx context.Context, payment *model.Payment)
	Close() error
}

type PassengerSavedEvent struct {
	BookingID string               `json:"bookingId"`
	Name      string               `json:"name,omitempty"`
	Email     string               `json:"email,omitempty"`
	Flight    *model.FlightDetails `json:"flightDetails,omitempty"`
}

type PaymentVerifiedEvent struct {
	OrderID      string       `json:"orderId"`
	PaymentID    string       `json:"paymentId"`
	Hotel        string       `json:"hotel,omitempty"`
	RoomClass    string       `json:"roomClass,omitempty"`
	TotalPrice   *model.Float `json:"totalPrice,omitempty"`
	CustomerName string       `json:"customerName,omitempty"`
	Email        string       `json:"email,omitempty"`
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer messagePublisher
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, source string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source, log: log}
}

func (p *KafkaPublisher) PassengerSaved(ctx context.Context, passenger *model.Passenger) {
	p.publish(ctx, TypePassengerSaved, passenger.BookingID, PassengerSavedEvent{
		BookingID: passenger.BookingID,
		Name:      passenger.Name,
		Email:     passenger.Email,
		Flight:    passenger.FlightDetails,
	})
}

func (p *KafkaPublisher) PaymentVerified(ctx context.Context, payment *model.Payment) {
	p.publish(ctx, TypePaymentVerified, payment.RazorpayPaymentID, PaymentVerifiedEvent{
		OrderID:      payment.RazorpayOrderID,
		PaymentID:    payment.RazorpayPaymentID,
		Hotel:        payment.Hotel,
		RoomClass:    payment.RoomClass,
		TotalPrice:   payment.TotalPrice,
		CustomerName: payment.CustomerName,
		Email:        payment.Email,
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType, key string, payload any) {
	log := p.log.WithRequest(ctx)

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithEventType(eventType).
		WithSource(p.source).
		WithSchemaVersion(SchemaVersion).
		WithCorrelationID(logger.RequestID(ctx)).
		WithValue(payload).
		Build()
	if err != nil {
		log.Error("Failed to build event", "event_type", eventType, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		log.Error("Failed to publish event", "event_type", eventType, "key", key, "error", err)
		return
	}
	log.Info("Event published", "event_type", eventType, "event_id", msg.EventID())
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PassengerSaved(context.Context, *model.Passenger) {}

func (NopPublisher) PaymentVerified(context.Context, *model.Payment) {}

func (NopPublisher) Close() error { return nil }
