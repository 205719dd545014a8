package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. The types reflect how the
// values are used: strings for identifiers and secrets, ints and
// durations for costs and lifetimes.
type Config struct {
	Env        string        // application environment (e.g. "dev", "prod")
	Port       string        // HTTP port to listen on
	BaseURL    string        // public base URL used when echoing short links back
	DBUser     string        // database username
	DBPass     string        // database password (optional)
	DBHost     string        // database host address
	DBPort     string        // database port number
	DBName     string        // database name
	JWTSecret  string        // secret used to sign session tokens
	BcryptCost int           // bcrypt cost for password hashing
	AMQPURL    string        // broker URL for the click-event pipeline (optional)
	CacheTTL   time.Duration // Redis TTL for cached shortcode resolutions
}

// Load reads configuration values from environment variables and
// returns a Config. A .env file is honored when present. Required
// variables are enforced by must(); missing values exit with a fatal
// log message.
func Load() Config {
	_ = godotenv.Load() // best effort; real env always wins

	return Config{
		Env:        optional("APP_ENV", "dev"),
		Port:       optional("APP_PORT", "8080"),
		BaseURL:    optional("BASE_URL", "http://localhost:8080"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"), // empty allowed
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		JWTSecret:  must("JWT_SECRET"),
		BcryptCost: optionalInt("BCRYPT_COST", 12),
		AMQPURL:    os.Getenv("AMQP_URL"), // empty disables the broker path
		CacheTTL:   optionalDur("LINK_CACHE_TTL", 5*time.Minute),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func optional(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func optionalInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func optionalDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
