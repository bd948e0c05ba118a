package config // package config loads application configuration from environment variables

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Profile names.  The production profile is selected when the hosting
// platform supplies WEBSITE_HOSTNAME; everything else is development.
const (
	ProfileDevelopment = "development"
	ProfileProduction  = "production"
)

// defaultSQLitePath is the embedded database used when no Postgres
// settings are present in development.
const defaultSQLitePath = "restaurants.db"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable or is derived from several of them.
type Config struct {
	Env                 string        // selected profile (development/production)
	Port                string        // HTTP port to listen on
	DatabaseURI         string        // primary database DSN (postgres URL/key-value, or sqlite file)
	StaticDir           string        // directory holding favicon.ico
	PingTimeout         time.Duration // per-probe deadline for /ping
	PingParallel        bool          // run /ping probes concurrently
	ReviewEventsEnabled bool          // publish and consume review.created events
	AMQPURL             string        // broker URL for review events
	Probes              ProbeConfig   // connection settings for /ping
	RateLimit           RateLimitConfig
}

// Load selects the profile, reads the environment and returns a Config.
// In development a .env file in the working directory is loaded first when
// present; missing files are not an error.
func Load() Config {
	env := ProfileDevelopment
	if _, ok := os.LookupEnv("WEBSITE_HOSTNAME"); ok {
		env = ProfileProduction
	}
	if env == ProfileDevelopment {
		log.Printf("config: loading development profile and .env file")
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("config: .env not loaded: %v", err)
		}
	} else {
		log.Printf("config: loading production profile")
	}

	probes := LoadProbeConfig()
	amqpURL := getenv("RABBITMQ_URL", probes.RabbitMQ.URL())

	return Config{
		Env:                 env,
		Port:                getenv("APP_PORT", "8000"),
		DatabaseURI:         databaseURI(env),
		StaticDir:           getenv("STATIC_DIR", "static"),
		PingTimeout:         envDur("PING_TIMEOUT", 3*time.Second),
		PingParallel:        envBool("PING_PARALLEL", false),
		ReviewEventsEnabled: envBool("REVIEW_EVENTS_ENABLED", true),
		AMQPURL:             amqpURL,
		Probes:              probes,
		RateLimit:           LoadRateLimitConfig(),
	}
}

// databaseURI returns the primary database connection string for a profile.
// Production expects the platform-provided Postgres connection string.
// Development prefers DATABASE_URI, then discrete DB* variables, then the
// embedded SQLite file.
func databaseURI(env string) string {
	if v := os.Getenv("DATABASE_URI"); v != "" {
		return v
	}
	if env == ProfileProduction {
		if v := os.Getenv("AZURE_POSTGRESQL_CONNECTIONSTRING"); v != "" {
			return v
		}
		log.Printf("config: production profile without AZURE_POSTGRESQL_CONNECTIONSTRING, using %s", defaultSQLitePath)
		return defaultSQLitePath
	}
	host := os.Getenv("DBHOST")
	if host == "" {
		return defaultSQLitePath
	}
	return fmt.Sprintf("postgresql://%s:%s@%s/%s",
		os.Getenv("DBUSER"), os.Getenv("DBPASS"), host, getenv("DBNAME", "restaurants_reviews"))
}
