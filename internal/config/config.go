package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  JWTSecret signs the session cookie and is
// the only value with no sane default; everything else falls back to a
// development-friendly value.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign session tokens
	SessionTTLMin int    // session cookie time-to-live in minutes, used by the login flow
	BcryptCost    int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns
// a Config.  JWT_SECRET is enforced by must() and a missing value causes
// the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           envStr("APP_ENV", "dev"),
		Port:          envStr("APP_PORT", "8080"),
		DBUser:        envStr("DB_USER", "root"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        envStr("DB_HOST", "127.0.0.1"),
		DBPort:        envStr("DB_PORT", "3306"),
		DBName:        envStr("DB_NAME", "garage"),
		JWTSecret:     must("JWT_SECRET"),
		SessionTTLMin: envInt("SESSION_TTL_MIN", 60),
		BcryptCost:    envInt("BCRYPT_COST", 10),
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

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
