package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Configuration
	Port        string
	Environment string
	Debug       bool

	// Database Configuration
	MongoURI string
	DBName   string

	// JWT Configuration
	JWTSecret      string
	AccessTokenTTL time.Duration

	// Storage Configuration
	StorageProvider string
	UploadPath      string
	MaxUploadSize   int64
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string

	// Summarization Configuration
	HuggingFaceAPIKey string
	SummaryModelURL   string

	// Trash Configuration
	TrashRetention       time.Duration
	TrashCleanupInterval time.Duration

	// Security Configuration
	CORSAllowedOrigins []string

	// Application Configuration
	AppName    string
	AppVersion string
	AppURL     string
}

var AppConfig *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	config := &Config{
		// Server Configuration
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvAsBool("DEBUG", true),

		// Database Configuration
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "drivehub"),

		// JWT Configuration
		JWTSecret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
		AccessTokenTTL: getEnvAsDuration("ACCESS_TOKEN_TTL", "24h"),

		// Storage Configuration
		StorageProvider: getEnv("STORAGE_PROVIDER", "local"),
		UploadPath:      getEnv("UPLOAD_PATH", "./uploads"),
		MaxUploadSize:   getEnvAsInt64("MAX_UPLOAD_SIZE", 104857600), // 100MB
		S3Region:        getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:        getEnv("AWS_S3_BUCKET_NAME", ""),
		S3AccessKey:     getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3Endpoint:      getEnv("AWS_S3_ENDPOINT", ""),

		// Summarization Configuration
		HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
		SummaryModelURL: getEnv("SUMMARY_MODEL_URL",
			"https://api-inference.huggingface.co/models/facebook/bart-large-cnn"),

		// Trash Configuration
		TrashRetention:       getEnvAsDuration("TRASH_RETENTION", "720h"), // 30 days
		TrashCleanupInterval: getEnvAsDuration("TRASH_CLEANUP_INTERVAL", "1h"),

		// Security Configuration
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:8080",
		}),

		// Application Configuration
		AppName:    getEnv("APP_NAME", "DriveHub"),
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		AppURL:     getEnv("APP_URL", "http://localhost:8080"),
	}

	// Set global config
	AppConfig = config

	if config.Debug {
		log.Printf("Configuration loaded: Environment=%s, Port=%s, Database=%s",
			config.Environment, config.Port, config.DBName)
	}

	return config
}

// GetConfig returns the global configuration, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		return LoadConfig()
	}
	return AppConfig
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	if parsed, err := time.ParseDuration(defaultValue); err == nil {
		return parsed
	}
	return 24 * time.Hour // fallback
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetServerAddress returns the server address for listening
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	if c.MongoURI == "" {
		log.Fatal("MONGO_URI environment variable is required")
	}

	if c.JWTSecret == "your-super-secret-jwt-key-change-in-production" && c.IsProduction() {
		log.Fatal("JWT_SECRET must be changed in production")
	}

	if c.StorageProvider == "s3" && c.S3Bucket == "" {
		log.Fatal("AWS_S3_BUCKET_NAME is required when STORAGE_PROVIDER=s3")
	}

	if c.StorageProvider == "local" {
		if err := os.MkdirAll(c.UploadPath, 0755); err != nil {
			log.Printf("Warning: Could not create upload directory %s: %v", c.UploadPath, err)
		}
	}

	return nil
}
