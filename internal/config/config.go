// Package config loads application configuration from environment
// variables.  A .env file in the working directory is honoured when
// present.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Database settings are
// optional: when DB_HOST is empty the server runs on the in-memory
// booking store.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	JWTSecret string // secret used to verify bearer tokens

	DBUser string // database username (optional)
	DBPass string // database password (optional)
	DBHost string // database host; empty disables the MySQL store
	DBPort string // database port
	DBName string // database name

	LockTTL       time.Duration // seat lock time-to-live
	SweepInterval time.Duration // lock table sweep cadence

	// AssumedFreeSeats emulates the legacy promotion engine's
	// hardcoded free-seat constant.  0 queries live inventory.
	AssumedFreeSeats int
	// RACQuota is the number of RAC slots per train/date/coach
	// bucket.
	RACQuota int
}

// Load reads configuration from the environment.  Required variables
// are enforced by must(); missing values exit with a fatal log.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		JWTSecret:        must("JWT_SECRET"),
		DBUser:           os.Getenv("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBName:           os.Getenv("DB_NAME"),
		LockTTL:          envDur("SEAT_LOCK_TTL", 10*time.Minute),
		SweepInterval:    envDur("SEAT_LOCK_SWEEP_INTERVAL", 60*time.Second),
		AssumedFreeSeats: envInt("PROMO_ASSUMED_FREE_SEATS", 0),
		RACQuota:         envInt("RAC_QUOTA", 2),
	}
}

// must retrieves the value of a required environment variable.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envInt(key string, def int) int {
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

func envDur(key string, def time.Duration) time.Duration {
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
