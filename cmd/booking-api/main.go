package main

import (
	"go.mongodb.org/mongo-driver/mongo"

	authhandler "skybook/internal/auth/handler"
	authrepository "skybook/internal/auth/repository"
	authservice "skybook/internal/auth/service"
	cataloghandler "skybook/internal/catalog/handler"
	catalogservice "skybook/internal/catalog/service"
	"skybook/internal/catalog/storage"
	"skybook/internal/events"
	"skybook/internal/health"
	notificationhandler "skybook/internal/notifications/handler"
	"skybook/internal/notifications/mailer"
	notificationservice "skybook/internal/notifications/service"
	passengerhandler "skybook/internal/passengers/handler"
	passengerrepository "skybook/internal/passengers/repository"
	passengerservice "skybook/internal/passengers/service"
	"skybook/internal/passengers/validator"
	"skybook/internal/payments/gateway"
	paymenthandler "skybook/internal/payments/handler"
	paymentrepository "skybook/internal/payments/repository"
	paymentservice "skybook/internal/payments/service"
	"skybook/pkg/app"
	"skybook/pkg/config"
	"skybook/pkg/contracts"
	"skybook/pkg/kafka"
)

const ServiceName = "booking-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Booking API")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	publisher := initPublisher(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(publisher.Close)
	serverApp.SetApp(
		health.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
		initHandlers(cfg, db, publisher)...,
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka not configured, booking events disabled")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaBookingTopic,
		DLQTopic: cfg.KafkaDLQTopic,
	}, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka.LoggingMiddleware(cfg.Log, cfg.KafkaBookingTopic))

	cfg.Log.Info("Booking events enabled", "topic", cfg.KafkaBookingTopic, "brokers", cfg.KafkaBrokers)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}

func initMailer(cfg *config.Config) mailer.Mailer {
	if !cfg.MailRelayConfigured() {
		cfg.Log.Warn("Mail relay not configured, confirmations will only be logged")
		return mailer.NewLogMailer(cfg.Log)
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		From:     cfg.EmailFrom,
		Timeout:  cfg.EmailTimeout,
	})
}

func initHandlers(cfg *config.Config, db *mongo.Database, publisher events.Publisher) []contracts.Handler {
	catalogService := catalogservice.NewCatalogService(
		storage.NewFileStore(cfg.FlightsFile),
		storage.NewFileStore(cfg.HotelsFile),
		cfg.Log,
	)

	passengerService := passengerservice.NewPassengerService(
		passengerrepository.NewMongoPassengerRepository(cfg, db),
		validator.NewPassengerValidator(),
		publisher,
		cfg,
	)

	paymentService := paymentservice.NewPaymentService(
		gateway.NewRazorpayGateway(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayTimeout),
		paymentrepository.NewMongoPaymentRepository(cfg, db),
		paymentservice.NewSigner(cfg.RazorpayKeySecret),
		publisher,
		cfg,
	)

	notificationService := notificationservice.NewNotificationService(initMailer(cfg), cfg)

	authService := authservice.NewAuthService(authrepository.NewMongoUserRepository(cfg, db), cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return []contracts.Handler{
		cataloghandler.NewCatalogHandler(catalogService, cfg.Log),
		passengerhandler.NewPassengerHandler(passengerService, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, cfg.Log),
		notificationhandler.NewNotificationHandler(notificationService, cfg.Log),
		authhandler.NewAuthHandler(authService, cfg.Log),
	}
}
