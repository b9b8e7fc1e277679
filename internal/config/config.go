package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Notify   NotifyConfig
	Cookie   CookieConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// OTPConfig holds one-time passcode configuration
type OTPConfig struct {
	Secret      string
	Digits      int
	StepMinutes int
}

// NotifyConfig holds notification gateway credentials (email + SMS)
type NotifyConfig struct {
	EmailAPIKey    string
	EmailSender    string
	EmailName      string
	SMSAccountSID  string
	SMSAuthToken   string
	SMSFrom        string
	TimeoutSeconds int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(),
		JWT:      loadJWTConfig(),
		OTP:      loadOTPConfig(),
		Notify:   loadNotifyConfig(),
		Cookie:   loadCookieConfig(),
	}

	if config.JWT.AccessSecret == "" || config.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if config.OTP.Secret == "" {
		return nil, fmt.Errorf("OTP_SECRET must be set")
	}

	AppConfig = config

	log.Printf("Configuration loaded [MODE: %s]", appMode)
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "educenter"),
	}
}

func loadJWTConfig() JWTConfig {
	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "1"))

	return JWTConfig{
		AccessSecret:     getEnv("JWT_ACCESS_SECRET", ""),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

func loadOTPConfig() OTPConfig {
	digits, _ := strconv.Atoi(getEnv("OTP_DIGITS", "5"))
	step, _ := strconv.Atoi(getEnv("OTP_STEP_MINUTES", "10"))

	return OTPConfig{
		Secret:      getEnv("OTP_SECRET", ""),
		Digits:      digits,
		StepMinutes: step,
	}
}

func loadNotifyConfig() NotifyConfig {
	timeout, _ := strconv.Atoi(getEnv("NOTIFY_TIMEOUT_SECONDS", "10"))

	return NotifyConfig{
		EmailAPIKey:    getEnv("EMAIL_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@educenter.uz"),
		EmailName:      getEnv("EMAIL_SENDER_NAME", "EduCenter"),
		SMSAccountSID:  getEnv("SMS_ACCOUNT_SID", ""),
		SMSAuthToken:   getEnv("SMS_AUTH_TOKEN", ""),
		SMSFrom:        getEnv("SMS_FROM", ""),
		TimeoutSeconds: timeout,
	}
}

func loadCookieConfig() CookieConfig {
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://educenter.uz"
	}
	return origins
}
