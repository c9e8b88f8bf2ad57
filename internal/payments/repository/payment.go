package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	paymentserrors "skybook/internal/payments/errors"
	"skybook/pkg/config"
	mongodb "skybook/pkg/db/mongo"
	"skybook/pkg/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
}

type mongoPaymentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPaymentRepository(cfg *config.Config, db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepository{
		cfg:        cfg,
		collection: db.Collection(mongodb.PaymentsCollection),
	}
}

func (r *mongoPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", paymentserrors.ErrDuplicatePayment, p.RazorpayPaymentID)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}
