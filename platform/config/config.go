// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for the admin middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// EmailConfig provides settings for the primary notification channel.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetEmailProvider() string
	GetBrevoAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetLeadNotifyAddress() string
}

// GravityFormsConfig provides settings for the signed form-field API adapter.
type GravityFormsConfig interface {
	GetGravityFormsBaseURL() string
	GetGravityFormsFormID() string
	GetGravityFormsPublicKey() string
	GetGravityFormsPrivateKey() string
	IsGravityFormsEnabled() bool
}

// SmartMovingConfig provides settings for the lead-intake API adapter.
type SmartMovingConfig interface {
	GetSmartMovingAPIURL() string
	GetSmartMovingProviderKey() string
	IsSmartMovingEnabled() bool
}

// SchedulerConfig provides settings for background job processing.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetLeadRetentionDays() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	DatabaseURL     string
	JWTAccessSecret string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	EmailEnabled      bool
	EmailProvider     string
	BrevoAPIKey       string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	EmailFromName     string
	EmailFromAddress  string
	LeadNotifyAddress string

	GravityFormsBaseURL    string
	GravityFormsFormID     string
	GravityFormsPublicKey  string
	GravityFormsPrivateKey string

	SmartMovingAPIURL      string
	SmartMovingProviderKey string

	RedisURL          string
	RedisTLSInsecure  bool
	AsynqQueueName    string
	AsynqConcurrency  int
	LeadRetentionDays int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool         { return c.EmailEnabled }
func (c *Config) GetEmailProvider() string      { return c.EmailProvider }
func (c *Config) GetBrevoAPIKey() string        { return c.BrevoAPIKey }
func (c *Config) GetSMTPHost() string           { return c.SMTPHost }
func (c *Config) GetSMTPPort() int              { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string       { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string       { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string      { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string   { return c.EmailFromAddress }
func (c *Config) GetLeadNotifyAddress() string  { return c.LeadNotifyAddress }

// GravityFormsConfig implementation
func (c *Config) GetGravityFormsBaseURL() string    { return c.GravityFormsBaseURL }
func (c *Config) GetGravityFormsFormID() string     { return c.GravityFormsFormID }
func (c *Config) GetGravityFormsPublicKey() string  { return c.GravityFormsPublicKey }
func (c *Config) GetGravityFormsPrivateKey() string { return c.GravityFormsPrivateKey }
func (c *Config) IsGravityFormsEnabled() bool {
	return c.GravityFormsBaseURL != "" && c.GravityFormsPublicKey != "" && c.GravityFormsPrivateKey != ""
}

// SmartMovingConfig implementation
func (c *Config) GetSmartMovingAPIURL() string      { return c.SmartMovingAPIURL }
func (c *Config) GetSmartMovingProviderKey() string { return c.SmartMovingProviderKey }
func (c *Config) IsSmartMovingEnabled() bool {
	return c.SmartMovingAPIURL != "" && c.SmartMovingProviderKey != ""
}

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) GetLeadRetentionDays() int { return c.LeadRetentionDays }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "true"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTAccessSecret: getEnv("JWT_ACCESS_SECRET", ""),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),

		EmailEnabled:      strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true"),
		EmailProvider:     strings.ToLower(getEnv("EMAIL_PROVIDER", "brevo")),
		BrevoAPIKey:       getEnv("BREVO_API_KEY", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Quote Widget"),
		EmailFromAddress:  getEnv("EMAIL_FROM_ADDRESS", ""),
		LeadNotifyAddress: getEnv("LEAD_NOTIFY_ADDRESS", ""),

		GravityFormsBaseURL:    getEnv("GRAVITY_FORMS_BASE_URL", ""),
		GravityFormsFormID:     getEnv("GRAVITY_FORMS_FORM_ID", "1"),
		GravityFormsPublicKey:  getEnv("GRAVITY_FORMS_PUBLIC_KEY", ""),
		GravityFormsPrivateKey: getEnv("GRAVITY_FORMS_PRIVATE_KEY", ""),

		SmartMovingAPIURL:      getEnv("SMARTMOVING_API_URL", ""),
		SmartMovingProviderKey: getEnv("SMARTMOVING_PROVIDER_KEY", ""),

		RedisURL:          getEnv("REDIS_URL", ""),
		RedisTLSInsecure:  strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:  mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		LeadRetentionDays: mustInt(getEnv("LEAD_RETENTION_DAYS", "0")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func mustInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
