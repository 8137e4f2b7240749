package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBDriver   string // sqlite or postgres
	DBName     string // sqlite file path, or postgres database name
	DBHost     string
	DBUser     string
	DBPassword string
	DBPort     string

	GoogleAPIKey  string // empty disables the chatbot's content path
	GenAIBaseURL  string
	EmbedModel    string
	LLMModel      string
	GenAITimeout  int // seconds, per external call
	RetrievalTopK int

	UploadDir string

	EmailSender string
	Password    string // SMTP Password
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBName:     getEnv("DB_NAME", "campus.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBPort:     getEnv("DB_PORT", "5432"),

		GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
		GenAIBaseURL:  getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		EmbedModel:    getEnv("EMBED_MODEL", "embedding-001"),
		LLMModel:      getEnv("LLM_MODEL", "gemini-1.5-flash-latest"),
		GenAITimeout:  getEnvInt("GENAI_TIMEOUT_SECONDS", 30),
		RetrievalTopK: getEnvInt("RETRIEVAL_TOP_K", 4),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.GoogleAPIKey == "" {
		log.Println("Warning: GOOGLE_API_KEY not set. Course-content chatbot answers are disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
