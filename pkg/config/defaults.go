package config

import "time"

const (
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "skybook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultFlightsFile = "data/flights.json"
	DefaultHotelsFile  = "data/hotels.json"

	DefaultRazorpayBaseURL = "https://api.razorpay.com/v1"
	DefaultRazorpayTimeout = 15 * time.Second

	DefaultEmailHost    = "smtp.gmail.com"
	DefaultEmailPort    = "587"
	DefaultEmailTimeout = 15 * time.Second

	DefaultJWTTTL = 24 * time.Hour

	DefaultKafkaBookingTopic = "booking-events"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	MinJWTSecretLength = 16
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
