package config

import (
	"os"
	"strconv"
	"time"

	"club-platform/internal/gateway/cashfree"
	"club-platform/internal/gateway/instamojo"
	"club-platform/storage"
)

type Config struct {
	// Server configuration
	Environment string
	PublicURL   string

	// Redis configuration
	RedisURL string

	// Gateway configuration
	Cashfree  cashfree.Config
	Instamojo instamojo.Config

	// Object storage (QR images)
	ObjectStore storage.S3Config

	// Email
	MailFromName    string
	MailFromAddress string
	ContactInbox    string

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubUUID         string

	// Webhook worker
	WebhookMaxAttempts int
	WebhookRetryDelay  time.Duration

	// Rate limiting
	RateLimitWindow   time.Duration
	RateLimitRequests int

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),
		PublicURL:   getEnv("PUBLIC_URL", "http://localhost:8090"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),

		// Cashfree
		Cashfree: cashfree.Config{
			ClientID:     getEnv("CASHFREE_CLIENT_ID", ""),
			ClientSecret: getEnv("CASHFREE_CLIENT_SECRET", ""),
			Mode:         getEnv("CASHFREE_MODE", "sandbox"),
			BaseURL:      getEnv("CASHFREE_BASE_URL", ""),
		},

		// Instamojo
		Instamojo: instamojo.Config{
			APIKey:    getEnv("INSTAMOJO_API_KEY", ""),
			AuthToken: getEnv("INSTAMOJO_AUTH_TOKEN", ""),
			Salt:      getEnv("INSTAMOJO_SALT", ""),
			Mode:      getEnv("INSTAMOJO_MODE", "sandbox"),
			BaseURL:   getEnv("INSTAMOJO_BASE_URL", ""),
		},

		// Object storage
		ObjectStore: storage.S3Config{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretKey:     getEnv("R2_SECRET_ACCESS_KEY", ""),
			Bucket:        getEnv("R2_BUCKET_NAME", ""),
			Endpoint:      getEnv("R2_ENDPOINT", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},

		// Email
		MailFromName:    getEnv("MAIL_FROM_NAME", "Student Club"),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", "noreply@club.local"),
		ContactInbox:    getEnv("CONTACT_INBOX", ""),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubUUID:         getEnv("PUBNUB_UUID", "club-platform-server"),

		// Webhook worker
		WebhookMaxAttempts: getEnvAsInt("WEBHOOK_MAX_ATTEMPTS", 5),
		WebhookRetryDelay:  getEnvAsDuration("WEBHOOK_RETRY_DELAY", "10s"),

		// Rate limiting
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 30),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
