package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvFlightsFile = "FLIGHTS_FILE"
	EnvHotelsFile  = "HOTELS_FILE"

	EnvRazorpayKeyID     = "RAZORPAY_KEY_ID"
	EnvRazorpayKeySecret = "RAZORPAY_KEY_SECRET"
	EnvRazorpayBaseURL   = "RAZORPAY_BASE_URL"
	EnvRazorpayTimeout   = "RAZORPAY_TIMEOUT"

	EnvEmailHost    = "EMAIL_HOST"
	EnvEmailPort    = "EMAIL_PORT"
	EnvEmailUser    = "EMAIL_USER"
	EnvEmailPass    = "EMAIL_PASS"
	EnvEmailFrom    = "EMAIL_FROM"
	EnvEmailTimeout = "EMAIL_TIMEOUT"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWTTTL    = "JWT_TTL"

	EnvAdminEmail    = "ADMIN_EMAIL"
	EnvAdminPassword = "ADMIN_PASSWORD"

	EnvRedisURL = "REDIS_URL"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaBookingTopic = "KAFKA_BOOKING_TOPIC"
	EnvKafkaDLQTopic     = "KAFKA_DLQ_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvTrustedProxies    = "TRUSTED_PROXIES"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
