package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	AppBaseURL          string
	TokenExpiry         time.Duration
	SendActivationEmail bool
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() usecasecontract.IConfigProvider {
	return &Config{
		AppBaseURL:          getEnv("APP_BASE_URL", "http://localhost:4000"),
		TokenExpiry:         time.Hour * time.Duration(getEnvAsInt("TOKEN_EXPIRY_HOURS", 8)),
		SendActivationEmail: getEnvAsBool("SEND_ACTIVATION_EMAIL", true),
	}
}

// GetAppBaseURL returns the origin used to compose activation links.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetTokenExpiry returns the lifetime of issued bearer tokens.
func (c *Config) GetTokenExpiry() time.Duration {
	return c.TokenExpiry
}

// GetSendActivationEmail returns whether registration dispatches the activation email.
func (c *Config) GetSendActivationEmail() bool {
	return c.SendActivationEmail
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}
