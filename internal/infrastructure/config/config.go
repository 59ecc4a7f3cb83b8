// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Email providers
const (
	ProviderMailgun = "mailgun"
	ProviderGmail   = "gmail"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Storage
	StoreBackend   string
	MongoURI       string
	MongoDB        string
	MongoUser      string
	MongoPassword  string
	PostgresURI    string
	FlightSeedFile string

	// Email
	EmailProvider  string
	EmailFrom      string
	MailgunAPIKey  string
	MailgunDomain  string
	MailgunBaseURL string
	SendTimeout    time.Duration

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string

	// Reservation terminal
	BagEnrichDelay time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		MongoURI:       getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "airops"),
		MongoUser:      getEnv("MONGO_USER", ""),
		MongoPassword:  getEnv("MONGO_PASSWORD", ""),
		PostgresURI:    getEnv("POSTGRES_DSN", ""),
		FlightSeedFile: getEnv("FLIGHT_SEED_FILE", ""),

		EmailProvider:  strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderMailgun)),
		EmailFrom:      getEnv("EMAIL_FROM", "Airport Operations <noreply@airops.local>"),
		MailgunAPIKey:  getEnv("MAILGUN_API_KEY", ""),
		MailgunDomain:  getEnv("MAILGUN_DOMAIN", "sandbox.mailgun.org"),
		MailgunBaseURL: strings.TrimRight(getEnv("MAILGUN_BASE_URL", "https://api.mailgun.net"), "/"),
		SendTimeout:    time.Duration(getEnvAsInt("SEND_TIMEOUT", 30)) * time.Second,

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		BagEnrichDelay: time.Duration(getEnvAsInt("BAG_ENRICH_DELAY_MS", 500)) * time.Millisecond,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
