// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// WhatsAppConfig provides settings for the outbound WhatsApp gateway.
type WhatsAppConfig interface {
	GetWhatsAppURL() string
	GetWhatsAppKey() string
	GetWhatsAppDeviceID() string
}

// AIConfig provides settings for the text-completion collaborator.
type AIConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	IsAIEnabled() bool
}

// ConversationConfig provides settings for the conversation engine.
type ConversationConfig interface {
	GetConversationStrategy() string
	GetScriptPath() string
	GetSchedulingLink() string
}

// NotificationConfig provides settings for agent alerting.
type NotificationConfig interface {
	GetAgentAlertPhone() string
}

// WebhookConfig provides rate-limit settings for the inbound webhook surface.
type WebhookConfig interface {
	GetWebhookRate() float64
	GetWebhookBurst() int
}

// Conversation strategy names accepted by CONVERSATION_STRATEGY.
const (
	StrategyScript  = "script"
	StrategyExtract = "extract"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	WhatsAppURL          string
	WhatsAppKey          string
	WhatsAppDeviceID     string
	GeminiAPIKey         string
	GeminiModel          string
	ConversationStrategy string
	ScriptPath           string
	SchedulingLink       string
	AgentAlertPhone      string
	WebhookRate          float64
	WebhookBurst         int
	ShutdownTimeout      time.Duration
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// WhatsAppConfig implementation
func (c *Config) GetWhatsAppURL() string      { return c.WhatsAppURL }
func (c *Config) GetWhatsAppKey() string      { return c.WhatsAppKey }
func (c *Config) GetWhatsAppDeviceID() string { return c.WhatsAppDeviceID }

// AIConfig implementation
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string  { return c.GeminiModel }
func (c *Config) IsAIEnabled() bool       { return c.GeminiAPIKey != "" }

// ConversationConfig implementation
func (c *Config) GetConversationStrategy() string { return c.ConversationStrategy }
func (c *Config) GetScriptPath() string           { return c.ScriptPath }
func (c *Config) GetSchedulingLink() string       { return c.SchedulingLink }

// NotificationConfig implementation
func (c *Config) GetAgentAlertPhone() string { return c.AgentAlertPhone }

// WebhookConfig implementation
func (c *Config) GetWebhookRate() float64 { return c.WebhookRate }
func (c *Config) GetWebhookBurst() int    { return c.WebhookBurst }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	webhookRate, err := floatEnv("WEBHOOK_RATE", "10")
	if err != nil {
		return nil, err
	}
	webhookBurst, err := intEnv("WEBHOOK_BURST", "30")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		WhatsAppURL:          getEnv("WHATSAPP_URL", ""),
		WhatsAppKey:          getEnv("WHATSAPP_API_KEY", ""),
		WhatsAppDeviceID:     getEnv("WHATSAPP_DEVICE_ID", ""),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ConversationStrategy: strings.ToLower(getEnv("CONVERSATION_STRATEGY", StrategyScript)),
		ScriptPath:           getEnv("SCRIPT_PATH", ""),
		SchedulingLink:       getEnv("SCHEDULING_LINK", "https://calendly.com/your-team/15min"),
		AgentAlertPhone:      getEnv("AGENT_ALERT_PHONE", ""),
		WebhookRate:          webhookRate,
		WebhookBurst:         webhookBurst,
		ShutdownTimeout:      shutdownTimeout,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.ConversationStrategy != StrategyScript && cfg.ConversationStrategy != StrategyExtract {
		return nil, fmt.Errorf("CONVERSATION_STRATEGY must be %q or %q", StrategyScript, StrategyExtract)
	}
	if cfg.ConversationStrategy == StrategyExtract && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required when CONVERSATION_STRATEGY is %q", StrategyExtract)
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func durationEnv(key, fallback string) (time.Duration, error) {
	value := getEnv(key, fallback)
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, value)
	}
	return d, nil
}

func intEnv(key, fallback string) (int, error) {
	value := getEnv(key, fallback)
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return result, nil
}

func floatEnv(key, fallback string) (float64, error) {
	value := getEnv(key, fallback)
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return result, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
