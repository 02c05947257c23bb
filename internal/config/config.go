package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Upload drivers
const (
	UploadDriverDisk = "disk"
	UploadDriverS3   = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string
	AutoMigrate bool

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Import uploads
	Upload UploadConfig

	// S3 Storage
	S3 S3Config

	// Event fan-out
	AMQP AMQPConfig

	// Rate limiting on mutating routes
	RateLimit RateLimitConfig
}

// UploadConfig controls where import files are staged
type UploadConfig struct {
	Driver   string
	Dir      string
	MaxBytes int64
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// AMQPConfig holds RabbitMQ configuration. An empty URL disables publishing.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// RateLimitConfig holds the per-client token bucket settings
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", true),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:         getEnv("ENV", "development"),
		Upload: UploadConfig{
			Driver:   getEnv("UPLOAD_DRIVER", UploadDriverDisk),
			Dir:      getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "ledger-uploads")),
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
		},
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "ledger-imports"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "ledger.events"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvInt("IMPORT_RATE_LIMIT", 30),
			Burst:             getEnvInt("IMPORT_RATE_BURST", 5),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.Upload.Driver {
	case UploadDriverDisk:
		if c.Upload.Dir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the disk upload driver")
		}
	case UploadDriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 upload driver")
		}
	default:
		return fmt.Errorf("UPLOAD_DRIVER must be %q or %q, got %q", UploadDriverDisk, UploadDriverS3, c.Upload.Driver)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("IMPORT_RATE_LIMIT and IMPORT_RATE_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default when the value is missing or not an integer
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
