package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	// Server
	ServerPort string
	GinMode    string
	PageSize   int

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Sessions
	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool

	// Rate limiting for login and registration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Origins allowed to call the admin API from a browser
	AdminOrigins []string

	// AWS S3
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	// Mail
	MailFrom string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("PAGE_SIZE", 10)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "blogicum")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("SESSION_TTL", 14*24*time.Hour)
	v.SetDefault("SECURE_COOKIE", false)

	v.SetDefault("AUTH_RATE_LIMIT", 20)
	v.SetDefault("AUTH_RATE_WINDOW", time.Minute)
	v.SetDefault("ADMIN_ORIGINS", "http://localhost:8000")

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_ENDPOINT", "")
	v.SetDefault("S3_BUCKET_NAME", "blogicum-media")
	v.SetDefault("S3_USE_SSL", "true")

	v.SetDefault("RABBITMQ_HOST", "localhost")
	v.SetDefault("RABBITMQ_PORT", "5672")
	v.SetDefault("RABBITMQ_USER", "guest")
	v.SetDefault("RABBITMQ_PASSWORD", "guest")

	v.SetDefault("MAIL_FROM", "admin@blogicum.com")

	config := &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		GinMode:    v.GetString("GIN_MODE"),
		PageSize:   v.GetInt("PAGE_SIZE"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		SessionTTL:   v.GetDuration("SESSION_TTL"),
		SecureCookie: v.GetBool("SECURE_COOKIE"),

		AuthRateLimit:  v.GetInt("AUTH_RATE_LIMIT"),
		AuthRateWindow: v.GetDuration("AUTH_RATE_WINDOW"),

		AdminOrigins: splitList(v.GetString("ADMIN_ORIGINS")),

		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		AWSEndpoint:        v.GetString("AWS_ENDPOINT"),
		S3BucketName:       v.GetString("S3_BUCKET_NAME"),
		S3UseSSL:           v.GetString("S3_USE_SSL"),

		RabbitMQHost:     v.GetString("RABBITMQ_HOST"),
		RabbitMQPort:     v.GetString("RABBITMQ_PORT"),
		RabbitMQUser:     v.GetString("RABBITMQ_USER"),
		RabbitMQPassword: v.GetString("RABBITMQ_PASSWORD"),

		MailFrom: v.GetString("MAIL_FROM"),
	}

	if config.PageSize <= 0 {
		config.PageSize = 10
	}

	return config, nil
}

// HasDefaultSecret reports whether the JWT secret was left at its placeholder value.
func (c *Config) HasDefaultSecret() bool {
	return c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
