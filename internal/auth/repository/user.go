package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	autherrors "skybook/internal/auth/errors"
	"skybook/pkg/config"
	mongodb "skybook/pkg/db/mongo"
	"skybook/pkg/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config, db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(mongodb.UsersCollection),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, u *model.User) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, u)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", autherrors.ErrDuplicateEmail, u.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var u model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", autherrors.ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}
