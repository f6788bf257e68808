package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	DBName       string
	JWTSecret    string
	JWTExpiresIn string
	GeminiAPIKey string
	GeminiTier   string
	Port         string
	GinMode      string
	CORSOrigins  []string
	MaxFileSize  int64
	BcryptCost   int

	// File layout
	UploadDir     string
	DocumentsFile string
	KeywordsFile  string

	// OCR subprocess
	PythonBin  string
	OCRScript  string
	OCRTimeout time.Duration

	// Model inference
	ModelTimeout time.Duration

	// Upload-dir sweep
	CleanupInterval time.Duration

	// Per-IP request throttling
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017/legalease"),
		DBName:       getEnv("DB_NAME", "legalease"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getEnv("JWT_EXPIRES_IN", "24h"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiTier:   getEnv("GEMINI_TIER", "free"),
		Port:         getEnv("PORT", "3001"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		CORSOrigins:  strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ","),
		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", 10485760), // 10MB upload cap
		BcryptCost:   getEnvInt("BCRYPT_COST", 10),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		DocumentsFile: getEnv("DOCUMENTS_FILE", "./documents.json"),
		KeywordsFile:  getEnv("KEYWORDS_FILE", ""),

		PythonBin:  getEnv("PYTHON_BIN", "python"),
		OCRScript:  getEnv("OCR_SCRIPT", "./scripts/easyocr_script.py"),
		OCRTimeout: getEnvDuration("OCR_TIMEOUT", 5*time.Minute),

		ModelTimeout: getEnvDuration("MODEL_TIMEOUT", 2*time.Minute),

		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", time.Hour),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required - set it in .env file")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
