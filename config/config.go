// Package config carries the defaults the CLI falls back to when flags are
// not given. Values come from the environment, optionally seeded from a
// .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DataFile  string
	DBPath    string
	LogFormat string
	Debug     bool
}

// Load reads .env into the environment (ignored if missing) and collects
// the ILLUME_* variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataFile:  getenvDefault("ILLUME_DATA_FILE", "train.csv"),
		DBPath:    getenvDefault("ILLUME_DB_PATH", "taxi_trips.db"),
		LogFormat: os.Getenv("ILLUME_LOG_FORMAT"),
		Debug:     os.Getenv("ILLUME_DEBUG") == "YES",
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
