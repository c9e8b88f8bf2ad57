package service

import (
	"context"
	"fmt"
	"strings"

	"skybook/internal/notifications/mailer"
	"skybook/pkg/config"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/model"
)

const failedMessage = "Failed to send email"

// FlightConfirmation feeds the flight templates.
type FlightConfirmation struct {
	Name   string
	Flight model.FlightDetails
}

// HotelConfirmation feeds the hotel templates. Fields are rendered as sent.
type HotelConfirmation struct {
	CustomerName string
	Hotel        string
	RoomClass    string
	RoomCount    model.Text
	StartDate    model.Text
	EndDate      model.Text
	NumberOfDays model.Text
	TotalPrice   model.Text
}

type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, kind Kind, recipient string, details any) error
}

type notificationService struct {
	mailer mailer.Mailer
	cfg    *config.Config
}

func NewNotificationService(m mailer.Mailer, cfg *config.Config) NotificationService {
	return &notificationService{
		mailer: m,
		cfg:    cfg,
	}
}

func (s *notificationService) SendBookingConfirmation(ctx context.Context, kind Kind, recipient string, details any) error {
	log := s.cfg.Log.WithRequest(ctx)

	msg, err := render(kind, recipient, details)
	if err != nil {
		log.Error("Failed to render confirmation", "kind", kind, "error", err)
		return apperrors.Delivery(failedMessage, err)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Error("Failed to send confirmation",
			"kind", kind,
			"to", msg.To,
			"error", err,
		)
		return apperrors.Delivery(failedMessage, err)
	}

	log.Info("Confirmation sent", "kind", kind, "to", msg.To)
	return nil
}

func render(kind Kind, recipient string, details any) (mailer.Message, error) {
	set, ok := templates[kind]
	if !ok {
		return mailer.Message{}, fmt.Errorf("unknown confirmation kind %q", kind)
	}

	var text, html strings.Builder
	if err := set.text.Execute(&text, details); err != nil {
		return mailer.Message{}, fmt.Errorf("render text body: %w", err)
	}
	if err := set.html.Execute(&html, details); err != nil {
		return mailer.Message{}, fmt.Errorf("render html body: %w", err)
	}

	return mailer.Message{
		To:      strings.TrimSpace(recipient),
		Subject: set.subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
