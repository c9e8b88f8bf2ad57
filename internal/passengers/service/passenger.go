package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skybook/internal/events"
	passengerserrors "skybook/internal/passengers/errors"
	"skybook/internal/passengers/repository"
	"skybook/internal/passengers/validator"
	"skybook/pkg/config"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/model"
	"skybook/pkg/sanitizer"
)

const bookingIDBytes = 16

type PassengerService interface {
	Save(ctx context.Context, p *model.Passenger) (*model.Passenger, error)
	GetByBookingID(ctx context.Context, bookingID string) (*model.Passenger, error)
}

type passengerService struct {
	repo      repository.PassengerRepository
	validator *validator.PassengerValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewPassengerService(
	repo repository.PassengerRepository,
	validator *validator.PassengerValidator,
	publisher events.Publisher,
	cfg *config.Config,
) PassengerService {
	return &passengerService{
		repo:      repo,
		validator: validator,
		events:    publisher,
		cfg:       cfg,
	}
}

func (s *passengerService) Save(ctx context.Context, p *model.Passenger) (*model.Passenger, error) {
	log := s.cfg.Log.WithRequest(ctx)

	s.sanitize(p)

	if err := s.validator.Validate(p); err != nil {
		log.Warn("Passenger validation failed", "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Passenger validation failed", verrs.Details())
		}
		return nil, apperrors.Validation("Passenger validation failed", map[string]any{"error": err.Error()})
	}

	bookingID, err := NewBookingID()
	if err != nil {
		log.Error("Failed to generate booking id", "error", err)
		return nil, apperrors.Internal("Error saving passenger details", err)
	}
	p.ID = primitive.NilObjectID
	p.BookingID = bookingID

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("Failed to save passenger",
			"booking_id", p.BookingID,
			"error", err,
		)
		return nil, apperrors.Persistence("Error saving passenger details", err)
	}

	log.Info("Passenger saved",
		"id", p.ID.Hex(),
		"booking_id", p.BookingID,
	)
	s.events.PassengerSaved(ctx, p)

	return p, nil
}

func (s *passengerService) GetByBookingID(ctx context.Context, bookingID string) (*model.Passenger, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	p, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, passengerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Passenger", bookingID)
		}
		s.cfg.Log.WithRequest(ctx).Error("Failed to get passenger by booking id",
			"booking_id", bookingID,
			"error", err,
		)
		return nil, apperrors.Persistence("Failed to retrieve passenger", err)
	}
	return p, nil
}

func (s *passengerService) sanitize(p *model.Passenger) {
	p.Name = sanitizer.NormalizeName(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Mobile = sanitizer.NormalizePhone(p.Mobile, sanitizer.DefaultRegion)
	p.Gender = sanitizer.TrimAndNormalize(p.Gender)
}

// NewBookingID returns 16 bytes from crypto/rand, hex encoded.
func NewBookingID() (string, error) {
	b := make([]byte, bookingIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
