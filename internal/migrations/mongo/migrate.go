package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skybook/internal/migrations/mongo/validators"
	mongodb "skybook/pkg/db/mongo"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

var (
	PassengersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	PaymentsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "razorpayPaymentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "razorpayOrderId", Value: 1}}},
	}

	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
)

type collectionDef struct {
	name      string
	indexes   []mongo.IndexModel
	validator bson.M
}

var collections = []collectionDef{
	{mongodb.PassengersCollection, PassengersIndexes, validators.PassengerValidator},
	{mongodb.PaymentsCollection, PaymentsIndexes, validators.PaymentValidator},
	{mongodb.UsersCollection, UsersIndexes, validators.UserValidator},
}

// RunMigration creates missing collections, refreshes their validators and
// ensures indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range collections {
		if err := ensureCollection(ctx, db, def.name, def.validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.name, err)
		}
		if err := ensureIndexes(ctx, db, def.name, def.indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

// SeedAdmin creates the admin account or resets its role and password.
func SeedAdmin(ctx context.Context, db *mongo.Database, email, passwordHash string, log *logger.Logger) error {
	if email == "" || passwordHash == "" {
		return fmt.Errorf("admin email and password hash are required")
	}

	filter := bson.M{"email": email}
	update := bson.M{
		"$set": bson.M{
			"role":         model.RoleAdmin,
			"passwordHash": passwordHash,
		},
		"$setOnInsert": bson.M{
			"name":      "Admin",
			"email":     email,
			"createdAt": time.Now().UTC(),
		},
	}

	res, err := db.Collection(mongodb.UsersCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Info("Admin account ensured",
		"email", email,
		"created", res.UpsertedCount > 0,
	)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
