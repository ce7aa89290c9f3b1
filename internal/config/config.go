package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Queue    QueueConfig
	Lock     LockConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	BasePath string
}

type QueueConfig struct {
	QuickScanTopic         string
	TextExtractionTopic    string
	ConceptExtractionTopic string
	PackGenerationTopic    string
	GameGenerationTopic    string
	DedupeTTL              time.Duration
}

type LockConfig struct {
	TTL  time.Duration
	Wait time.Duration
}

type AIConfig struct {
	LLMProvider string // "ollama" or "huggingface"
	LLMModel    string
	VisionModel string // model handling image inputs; falls back to LLMModel
	BaseURL     string
	APIKey      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		},
		Queue: QueueConfig{
			QuickScanTopic:         getEnv("QUICK_SCAN_TOPIC_NAME", "DOCUMENT_QUICK_SCAN"),
			TextExtractionTopic:    getEnv("TEXT_EXTRACTION_TOPIC_NAME", "DOCUMENT_TEXT_EXTRACTION"),
			ConceptExtractionTopic: getEnv("CONCEPT_EXTRACTION_TOPIC_NAME", "DOCUMENT_CONCEPT_EXTRACTION"),
			PackGenerationTopic:    getEnv("PACK_GENERATION_TOPIC_NAME", "DOCUMENT_PACK_GENERATION"),
			GameGenerationTopic:    getEnv("GAME_GENERATION_TOPIC_NAME", "DOCUMENT_GAME_GENERATION"),
			DedupeTTL:              getEnvAsDuration("QUEUE_DEDUPE_TTL", 10*time.Minute),
		},
		Lock: LockConfig{
			TTL:  getEnvAsDuration("DOCUMENT_LOCK_TTL", 10*time.Second),
			Wait: getEnvAsDuration("DOCUMENT_LOCK_WAIT", 2*time.Second),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:    getEnv("LLM_MODEL", "llama3"),
			VisionModel: getEnv("LLM_VISION_MODEL", "llava"),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			APIKey:      getEnv("LLM_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
