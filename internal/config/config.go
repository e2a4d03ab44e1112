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
	App       AppConfig
	Database  DatabaseConfig
	Supabase  SupabaseConfig
	Ai        AIConfig
	Chat      ChatConfig
	Cookie    CookieConfig
	Dashboard DashboardConfig
	SMTP      SMTPConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LiveLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEndpoint       string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type DatabaseConfig struct {
	Connection string
	// StoreDriver selects the chat store: postgres, sqlite, supabase or memory.
	StoreDriver string
	SQLitePath  string
}

type SupabaseConfig struct {
	URL        string
	ServiceKey string
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string
	LLMBaseURL        string
	OpenAIAPIKey      string
	EmbeddingProvider string // "ollama" or "" to disable retrieval
	OllamaBaseURL     string
	EmbeddingModel    string
	RetrievalTopK     int
	RetrievalMinScore float64
	AssistantTimeout  time.Duration
}

type ChatConfig struct {
	DailyLimit   int
	BurstLimit   int
	BurstWindow  time.Duration
	HistoryLimit int
	OwnerName    string
	OwnerContact string
	OwnerEmail   string
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type DashboardConfig struct {
	PasswordHash string // bcrypt
	JWTSecret    string
	TokenTTL     time.Duration
	StatsTTL     time.Duration
}

func (d DashboardConfig) Enabled() bool {
	return d.PasswordHash != "" && d.JWTSecret != ""
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Email != ""
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	env := getEnv("GO_ENV", "development")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        env,
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.json"),
			LiveLogFilePath:    getEnv("LIVE_LOG_FILE_PATH", "live.log.json"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Database: DatabaseConfig{
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
			SQLitePath:  getEnv("SQLITE_PATH", "portfolio.db"),
		},
		Supabase: SupabaseConfig{
			URL:        getEnv("SUPABASE_URL", ""),
			ServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			RetrievalTopK:     getEnvAsInt("RETRIEVAL_TOP_K", 4),
			RetrievalMinScore: getEnvAsFloat("RETRIEVAL_MIN_SCORE", 0.55),
			AssistantTimeout:  getEnvAsDuration("CHAT_ASSISTANT_TIMEOUT", 60*time.Second),
		},
		Chat: ChatConfig{
			DailyLimit:   getEnvAsInt("CHAT_DAILY_LIMIT", 10),
			BurstLimit:   getEnvAsInt("CHAT_BURST_LIMIT", 3),
			BurstWindow:  getEnvAsDuration("CHAT_BURST_WINDOW", 10*time.Second),
			HistoryLimit: getEnvAsInt("CHAT_HISTORY_LIMIT", 12),
			OwnerName:    getEnv("OWNER_NAME", "Frank"),
			OwnerContact: getEnv("OWNER_CONTACT", "hello@example.com"),
			OwnerEmail:   getEnv("OWNER_ALERT_EMAIL", ""),
		},
		Cookie: CookieConfig{
			Name:   getEnv("VISITOR_COOKIE_NAME", "ft_vid"),
			Secure: env == "production",
		},
		Dashboard: DashboardConfig{
			PasswordHash: getEnv("DASHBOARD_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvAsDuration("DASHBOARD_TOKEN_TTL", 12*time.Hour),
			StatsTTL:     getEnvAsDuration("DASHBOARD_STATS_TTL", 60*time.Second),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Portfolio Assistant"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
