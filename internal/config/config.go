package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries everything the binary reads from the environment.
type Config struct {
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	// Whether cash on delivery is offered at checkout.
	AllowCOD bool

	GoEnv       string // dev/prod
	FrontendURL string // CORS origin
}

func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RazorpayKeyID:     getenv("RAZORPAY_KEY_ID", "rzp_test_placeholder"),
		RazorpayKeySecret: getenv("RAZORPAY_KEY_SECRET", "secret_placeholder"),

		GoEnv:       getenv("GO_ENV", "dev"),
		FrontendURL: getenv("FE_URL", "http://localhost:3000"),
	}

	pgPort, err := atoiWithDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	allowCOD, err := boolWithDefault("ALLOW_COD", true)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowCOD = allowCOD

	// DATABASE_URL replaces the individual postgres settings when set.
	if os.Getenv("DATABASE_URL") == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiWithDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func boolWithDefault(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
