package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Stripe    StripeConfig
	Namecheap NamecheapConfig
	Gemini    GeminiConfig
	Mail      MailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// StripeConfig holds payment processor credentials
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// NamecheapConfig holds registrar API credentials
type NamecheapConfig struct {
	APIUser  string
	APIKey   string
	ClientIP string
	Sandbox  bool
	Timeout  time.Duration
}

// BaseURL returns the registrar endpoint for the configured environment
func (c NamecheapConfig) BaseURL() string {
	if c.Sandbox {
		return "https://api.sandbox.namecheap.com/xml.response"
	}
	return "https://api.namecheap.com/xml.response"
}

// GeminiConfig holds generative model settings
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// MailConfig holds SMTP settings
type MailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	ClientURL string
}

// CORSConfig holds the origin allow-list
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds inbound per-IP rate limit settings
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// JobsConfig holds background job settings
type JobsConfig struct {
	PendingPurchaseTTL time.Duration
	ExpiryInterval     time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "domainagent"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Namecheap: NamecheapConfig{
			APIUser:  getEnv("NAMECHEAP_API_USER", ""),
			APIKey:   getEnv("NAMECHEAP_API_KEY", ""),
			ClientIP: getEnv("NAMECHEAP_CLIENT_IP", "127.0.0.1"),
			Sandbox:  getEnvAsBool("NAMECHEAP_SANDBOX", true),
			Timeout:  getEnvAsDuration("NAMECHEAP_TIMEOUT", 15*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-pro"),
			Temperature: 0.7,
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
		},
		Mail: MailConfig{
			Host:      getEnv("MAIL_HOST", "localhost"),
			Port:      getEnvAsInt("MAIL_PORT", 587),
			Username:  getEnv("MAIL_USERNAME", ""),
			Password:  strings.Trim(getEnv("MAIL_PASSWORD", ""), `"`),
			FromName:  getEnv("MAIL_FROM_NAME", "Domain Buying Agent"),
			ClientURL: getEnv("CLIENT_URL", "http://localhost:5173"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Jobs: JobsConfig{
			PendingPurchaseTTL: getEnvAsDuration("PENDING_PURCHASE_TTL", 24*time.Hour),
			ExpiryInterval:     getEnvAsDuration("EXPIRY_JOB_INTERVAL", 10*time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
