package main

import (
	"context"
	"fmt"
	"time"

	authservice "skybook/internal/auth/service"
	mongoMigration "skybook/internal/migrations/mongo"
	"skybook/pkg/config"
	"skybook/pkg/sanitizer"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	if err := migrate(ctx, cfg); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.GracefulShutdown()
	cfg.Log.Info("Migration completed successfully")
}

func migrate(ctx context.Context, cfg *config.Config) error {
	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		return err
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		cfg.Log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	hash, err := authservice.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return mongoMigration.SeedAdmin(ctx, db, sanitizer.NormalizeEmail(cfg.AdminEmail), hash, cfg.Log)
}
