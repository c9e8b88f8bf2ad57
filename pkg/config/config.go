package config

import (
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"skybook/pkg/client"
	"skybook/pkg/logger"
)

type Config struct {
	Port string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	FlightsFile string
	HotelsFile  string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	RazorpayTimeout   time.Duration

	EmailHost    string
	EmailPort    string
	EmailUser    string
	EmailPass    string
	EmailFrom    string
	EmailTimeout time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	RedisURL string

	KafkaBrokers      []string
	KafkaBookingTopic string
	KafkaDLQTopic     string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	TrustedProxies    []string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads an optional .env file, then the environment. It exits the process
// when the resulting configuration is invalid.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	emailUser := getEnvStr(EnvEmailUser, "")

	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		FlightsFile: getEnvStr(EnvFlightsFile, DefaultFlightsFile),
		HotelsFile:  getEnvStr(EnvHotelsFile, DefaultHotelsFile),

		RazorpayKeyID:     getEnvStr(EnvRazorpayKeyID, ""),
		RazorpayKeySecret: getEnvStr(EnvRazorpayKeySecret, ""),
		RazorpayBaseURL:   strings.TrimRight(getEnvStr(EnvRazorpayBaseURL, DefaultRazorpayBaseURL), "/"),
		RazorpayTimeout:   getEnvDuration(EnvRazorpayTimeout, DefaultRazorpayTimeout),

		EmailHost:    getEnvStr(EnvEmailHost, DefaultEmailHost),
		EmailPort:    getEnvStr(EnvEmailPort, DefaultEmailPort),
		EmailUser:    emailUser,
		EmailPass:    getEnvStr(EnvEmailPass, ""),
		EmailFrom:    getEnvStr(EnvEmailFrom, emailUser),
		EmailTimeout: getEnvDuration(EnvEmailTimeout, DefaultEmailTimeout),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		JWTTTL:    getEnvDuration(EnvJWTTTL, DefaultJWTTTL),

		AdminEmail:    getEnvStr(EnvAdminEmail, ""),
		AdminPassword: getEnvStr(EnvAdminPassword, ""),

		RedisURL: getEnvStr(EnvRedisURL, ""),

		KafkaBrokers:      getEnvList(EnvKafkaBrokers),
		KafkaBookingTopic: getEnvStr(EnvKafkaBookingTopic, DefaultKafkaBookingTopic),
		KafkaDLQTopic:     getEnvStr(EnvKafkaDLQTopic, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		TrustedProxies:    getEnvList(EnvTrustedProxies),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects the optional idempotency backend. It is a no-op without REDIS_URL.
func (cfg *Config) SetRedis() {
	if cfg.RedisURL == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisURL, cfg.MongoConnTimeout)
}

func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

// MailRelayConfigured reports whether outbound mail can actually be relayed.
func (cfg *Config) MailRelayConfigured() bool {
	return cfg.EmailHost != "" && cfg.EmailUser != "" && cfg.EmailPass != ""
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.FlightsFile == "" {
		errors = append(errors, "FlightsFile cannot be empty")
	}
	if cfg.HotelsFile == "" {
		errors = append(errors, "HotelsFile cannot be empty")
	}

	if cfg.RazorpayKeySecret == "" {
		errors = append(errors, "RazorpayKeySecret cannot be empty")
	}
	if u, err := url.Parse(cfg.RazorpayBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("RazorpayBaseURL must be an absolute URL, got: %s", cfg.RazorpayBaseURL))
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWTSecret must be at least %d characters", MinJWTSecretLength))
	}

	if cfg.EmailPort != "" {
		if port, err := strconv.Atoi(cfg.EmailPort); err != nil || port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("EmailPort must be between 1 and 65535, got: %s", cfg.EmailPort))
		}
	}

	if cfg.KafkaEnabled() && cfg.KafkaBookingTopic == "" {
		errors = append(errors, "KafkaBookingTopic cannot be empty when KafkaBrokers is set")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RazorpayTimeout", cfg.RazorpayTimeout},
		{"EmailTimeout", cfg.EmailTimeout},
		{"JWTTTL", cfg.JWTTTL},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	for _, proxy := range cfg.TrustedProxies {
		if _, err := parseProxy(proxy); err != nil {
			errors = append(errors, fmt.Sprintf("TrustedProxies entry must be an IP or CIDR, got: %s", proxy))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"flights_file", cfg.FlightsFile,
		"hotels_file", cfg.HotelsFile,
		"razorpay_key_id", cfg.RazorpayKeyID,
		"razorpay_secret_set", cfg.RazorpayKeySecret != "",
		"razorpay_base_url", cfg.RazorpayBaseURL,
		"email_host", cfg.EmailHost,
		"email_port", cfg.EmailPort,
		"email_relay_configured", cfg.MailRelayConfigured(),
		"jwt_ttl", cfg.JWTTTL,
		"redis_enabled", cfg.RedisURL != "",
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_booking_topic", cfg.KafkaBookingTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"trusted_proxies", cfg.TrustedProxies,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

// TrustedProxyPrefixes returns the parsed TRUSTED_PROXIES list. Entries that
// fail to parse are skipped; Validate reports them.
func (cfg *Config) TrustedProxyPrefixes() []netip.Prefix {
	var out []netip.Prefix
	for _, proxy := range cfg.TrustedProxies {
		if p, err := parseProxy(proxy); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func parseProxy(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		return p.Masked(), err
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
