// Package config collects runtime settings from the environment.
package config

import "os"

// Config holds the knobs both front-ends share.
type Config struct {
	HTTPAddr     string
	DBPath       string
	BillsDir     string
	AllowOrigins string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads settings with defaults matching a local single-shop setup.
func Load() Config {
	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		DBPath:   getenv("DB_PATH", "dairy_management.db"),
		BillsDir: getenv("BILLS_DIR", "bills"),
		// default covers local dev pages
		AllowOrigins: getenv("ALLOW_ORIGINS", "http://127.0.0.1:5500,http://localhost:5500,http://localhost:3000"),
	}
}
