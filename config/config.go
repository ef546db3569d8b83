// config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. It is built once in main and passed to
// every component that needs it.
type Config struct {
	// App
	Env      string
	Port     string
	BaseURL  string
	LogLevel string

	// Server
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ExternalTimeout time.Duration
	MaxUploadBytes  int64

	// MongoDB
	MongoURI string
	DBName   string

	// Redis
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	VerifyMaxAttempts   int
	VerifyAttemptWindow time.Duration

	// Image storage
	StorageDriver string
	UploadDir     string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	S3PublicURL   string

	// Groq
	GroqAPIKey          string
	GroqBaseURL         string
	GroqVisionModel     string
	GroqTextModel       string
	GroqTranscribeModel string

	// Email
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	EmailFrom      string
	EmailReplyTo   string
	PickupLocation string

	// Shipping
	ShippingFeeCents int64
	PaymentMockDelay time.Duration

	// Staff auth
	JWTSecret         string
	StaffUsername     string
	StaffPasswordHash string
	TokenTTL          time.Duration

	// Seeding
	AllowSeed         bool
	SeedCustomerEmail string

	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, loading .env first if present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		BaseURL:  strings.TrimRight(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 60*time.Second),
		ExternalTimeout: getEnvAsDuration("EXTERNAL_TIMEOUT", 30*time.Second),
		MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10*1024*1024)),

		MongoURI: firstEnv("MONGO_URI", "MONGODB_URI"),
		DBName:   getEnv("DB_NAME", "lostfound"),

		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		VerifyMaxAttempts:   getEnvAsInt("VERIFY_MAX_ATTEMPTS", 10),
		VerifyAttemptWindow: getEnvAsDuration("VERIFY_ATTEMPT_WINDOW", time.Hour),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
		S3PublicURL:   strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),

		GroqAPIKey:          getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:         getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqVisionModel:     getEnv("GROQ_VISION_MODEL", "llama-3.2-90b-vision-preview"),
		GroqTextModel:       getEnv("GROQ_TEXT_MODEL", "llama-3.3-70b-specdec"),
		GroqTranscribeModel: getEnv("GROQ_TRANSCRIBE_MODEL", "distil-whisper-large-v3-en"),

		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvAsInt("SMTP_PORT", 2525),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "lost-and-found@localhost"),
		EmailReplyTo:   getEnv("EMAIL_REPLY_TO", ""),
		PickupLocation: getEnv("PICKUP_LOCATION", "the airport lost & found desk"),

		ShippingFeeCents: int64(getEnvAsInt("SHIPPING_FEE_CENTS", 999)),
		PaymentMockDelay: getEnvAsDuration("PAYMENT_MOCK_DELAY", 0),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		StaffUsername:     getEnv("STAFF_USERNAME", "staff"),
		StaffPasswordHash: getEnv("STAFF_PASSWORD_HASH", ""),
		TokenTTL:          getEnvAsDuration("TOKEN_TTL", 12*time.Hour),

		AllowSeed:         getEnvAsBool("ALLOW_SEED", false),
		SeedCustomerEmail: getEnv("SEED_CUSTOMER_EMAIL", "passenger@example.com"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.MongoURI == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
		cfg.MongoURI = "mongodb://localhost:27017"
	}

	if cfg.StorageDriver != "local" && cfg.StorageDriver != "s3" {
		return nil, errors.New("STORAGE_DRIVER must be 'local' or 's3'")
	}
	if cfg.StorageDriver == "s3" && cfg.S3Bucket == "" {
		return nil, errors.New("S3_BUCKET is required when STORAGE_DRIVER is 's3'")
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AuthEnabled reports whether staff routes require a JWT.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := getEnv(key, ""); value != "" {
			return value
		}
	}
	return ""
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
