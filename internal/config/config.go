package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The authentication values (signing secret, token
// lifetime, renewal window) are loaded exactly once at startup and never
// mutated afterwards; every component that needs them receives this struct
// by value.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	MongoURI         string // MongoDB connection string
	MongoDB          string // MongoDB database name
	JWTSecret        string // secret used to sign JWTs
	TokenTTLSec      int    // token lifetime in seconds
	RenewalWindowSec int    // seconds around expiry in which a token is silently re-issued
	BcryptCost       int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The bcrypt cost is
// optional and defaults to 10, matching the salt rounds used when the user
// collection was first populated.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),                     // environment (dev/test/prod)
		Port:             must("APP_PORT"),                    // port to bind the HTTP server
		MongoURI:         must("MONGO_URI"),                   // MongoDB connection string
		MongoDB:          must("MONGO_DB"),                    // database name
		JWTSecret:        must("JWT_SECRET"),                  // secret used for signing JWTs
		TokenTTLSec:      mustInt("TOKEN_TTL_SEC"),            // token lifetime in seconds
		RenewalWindowSec: mustInt("TOKEN_RENEWAL_WINDOW_SEC"), // silent renewal window in seconds
		BcryptCost:       optInt("BCRYPT_COST", 10),           // bcrypt cost factor
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// optInt reads an optional integer variable, falling back to def when the
// variable is unset or not a number.
func optInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
