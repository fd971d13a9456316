package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// TaxRate is the effective rate applied at save time, as a fraction.
	// Zero disables tax; any other rate must be configured explicitly.
	TaxRate       float64
	ExportDir     string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "billify.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.TaxRate = parseFloat("TAX_RATE", 0)
	cfg.ExportDir = getEnv("EXPORT_DIR", "exports")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
	cfg.GeminiBaseURL = os.Getenv("GEMINI_BASE_URL")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			log.Printf("invalid value for %s: %s", key, v)
			return def
		}
		return f
	}
	return def
}
