// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Company  CompanyConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds the database connection settings. URL accepts a
// postgres:// DSN or a SQLite file path; an empty value falls back to a
// local SQLite file.
type DatabaseConfig struct {
	URL string
}

// CompanyConfig is the issuing company's profile shown on every invoice.
// Read-only after process start; passed explicitly to the renderer.
type CompanyConfig struct {
	Name        string
	LegalName   string
	LegalNumber string
	Address     string
	City        string
	Zipcode     string
	Country     string
	VATNumber   string
	Email       string
	Phone       string
	BankName    string
	IBAN        string
	SWIFT       string

	// NativeCurrency is the fixed accounting currency all invoice totals
	// are summarized in, regardless of invoice currency.
	NativeCurrency string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "invoicing.db"),
		},
		Company: CompanyConfig{
			Name:           getEnv("COMPANY_NAME", "Your Company Name"),
			LegalName:      getEnv("COMPANY_LEGAL_NAME", "Your Company Ltd."),
			LegalNumber:    getEnv("COMPANY_LEGAL_NUMBER", ""),
			Address:        getEnv("COMPANY_ADDRESS", "123 Main Street"),
			City:           getEnv("COMPANY_CITY", "City"),
			Zipcode:        getEnv("COMPANY_ZIPCODE", "12345"),
			Country:        getEnv("COMPANY_COUNTRY", "Country"),
			VATNumber:      getEnv("COMPANY_VAT_NUMBER", "XX123456789"),
			Email:          getEnv("COMPANY_EMAIL", "billing@example.com"),
			Phone:          getEnv("COMPANY_PHONE", ""),
			BankName:       getEnv("COMPANY_BANK_NAME", "Bank Name"),
			IBAN:           getEnv("COMPANY_IBAN", "XX00 0000 0000 0000 0000 00"),
			SWIFT:          getEnv("COMPANY_SWIFT", "XXXXXX00"),
			NativeCurrency: getEnv("NATIVE_CURRENCY", "EUR"),
		},
		App: AppConfig{
			Dev: getEnvBool("DEV", false),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
