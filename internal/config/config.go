package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/finsightapp/market-data-backend/internal/amfi"
	"github.com/finsightapp/market-data-backend/internal/yahoo"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Market   MarketConfig
	Snapshot SnapshotConfig
	Features Features
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds the upstream endpoints, cache TTLs and valuation
// fallback multipliers for the market-data subsystem.
type MarketConfig struct {
	QuoteBaseURL string
	NavURL       string
	Timezone     string

	QuoteTTL           time.Duration
	PopularTTL         time.Duration
	NavRefreshInterval time.Duration
	FetchTimeout       time.Duration

	Growth GrowthConfig
}

// GrowthConfig holds the estimation multipliers applied when a holding
// cannot be priced unit-accurately. These are acknowledged placeholders,
// not a return model; they are configurable precisely because they carry no
// market meaning.
type GrowthConfig struct {
	Default   float64 // unrecognized type or missing identifier
	Estimated float64 // priced instrument without a unit count
	Index     float64 // index holdings, never priced live
}

// SnapshotConfig holds NAV snapshot persistence configuration. An empty
// path disables persistence.
type SnapshotConfig struct {
	Path string
}

// Features are the capability flags for optional upstream integrations,
// resolved once at startup. Components branch on these flags; a disabled
// integration degrades its endpoints to 503 instead of crashing.
type Features struct {
	Quotes bool
	Nav    bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			QuoteBaseURL:       getEnv("QUOTE_BASE_URL", yahoo.DefaultBaseURL),
			NavURL:             getEnv("NAV_URL", amfi.DefaultReportURL),
			Timezone:           getEnv("MARKET_TIMEZONE", "Asia/Kolkata"),
			QuoteTTL:           getEnvSeconds("QUOTE_CACHE_TTL_SECONDS", 60),
			PopularTTL:         getEnvSeconds("POPULAR_CACHE_TTL_SECONDS", 300),
			NavRefreshInterval: getEnvSeconds("NAV_REFRESH_SECONDS", 1800),
			FetchTimeout:       getEnvSeconds("FETCH_TIMEOUT_SECONDS", 30),
			Growth: GrowthConfig{
				Default:   getEnvFloat("GROWTH_DEFAULT", 1.08),
				Estimated: getEnvFloat("GROWTH_ESTIMATED", 1.10),
				Index:     getEnvFloat("GROWTH_INDEX", 1.12),
			},
		},
		Snapshot: SnapshotConfig{
			Path: getEnv("NAV_SNAPSHOT_PATH", ""),
		},
		Features: Features{
			Quotes: getEnvBool("QUOTES_ENABLED", true),
			Nav:    getEnvBool("NAV_ENABLED", true),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvSeconds parses an environment variable as a duration in whole
// seconds, falling back to the default on absence or a bad value.
func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}

// getEnvFloat parses an environment variable as a float, falling back to
// the default on absence or a bad value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

// getEnvBool parses an environment variable as a boolean, falling back to
// the default on absence or a bad value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
