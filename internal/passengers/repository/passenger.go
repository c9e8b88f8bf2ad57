package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	passengerserrors "skybook/internal/passengers/errors"
	"skybook/pkg/config"
	mongodb "skybook/pkg/db/mongo"
	"skybook/pkg/model"
)

type PassengerRepository interface {
	Create(ctx context.Context, p *model.Passenger) error
	FindByBookingID(ctx context.Context, bookingID string) (*model.Passenger, error)
}

type mongoPassengerRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPassengerRepository(cfg *config.Config, db *mongo.Database) PassengerRepository {
	return &mongoPassengerRepository{
		cfg:        cfg,
		collection: db.Collection(mongodb.PassengersCollection),
	}
}

func (r *mongoPassengerRepository) Create(ctx context.Context, p *model.Passenger) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", passengerserrors.ErrDuplicateBookingID, p.BookingID)
		}
		return fmt.Errorf("failed to create passenger: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *mongoPassengerRepository) FindByBookingID(ctx context.Context, bookingID string) (*model.Passenger, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var p model.Passenger
	err := r.collection.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", passengerserrors.ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to find passenger: %w", err)
	}
	return &p, nil
}
