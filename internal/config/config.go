package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
	OpenAIBaseURL       string // AI_INTEGRATIONS_OPENAI_BASE_URL, OpenAI-compatible endpoint root (…/v1)
	OpenAIAPIKey        string // AI_INTEGRATIONS_OPENAI_API_KEY
	OpenAIModel         string
	TranscribeModel     string
	AIRateLimit         int // requests per minute per client IP on /api/ai and transcription routes
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "5000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_TRANSCRIBE_MODEL", "whisper-1")
	v.SetDefault("AI_RATE_LIMIT_PER_MINUTE", 30)

	env := v.GetString("APP_ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}
	if env == "" {
		env = "development"
	}

	return &Config{
		Env:                 env,
		Port:                v.GetString("PORT"),
		LogLevel:            strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		OpenAIBaseURL:       strings.TrimRight(strings.TrimSpace(v.GetString("AI_INTEGRATIONS_OPENAI_BASE_URL")), "/"),
		OpenAIAPIKey:        strings.TrimSpace(v.GetString("AI_INTEGRATIONS_OPENAI_API_KEY")),
		OpenAIModel:         v.GetString("OPENAI_MODEL"),
		TranscribeModel:     v.GetString("OPENAI_TRANSCRIBE_MODEL"),
		AIRateLimit:         v.GetInt("AI_RATE_LIMIT_PER_MINUTE"),
	}, nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
