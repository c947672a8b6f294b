package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds store connection settings and the listen port, read once at
// startup.
type Config struct {
	Endpoint   string // Cosmos DB for MongoDB endpoint URI
	Key        string // account key, used as the connection password
	Database   string
	Collection string
	Port       string
}

// loadConfig reads configuration from the environment, with an optional
// .env file. The store endpoint and key have no usable defaults: without
// them the process must not start serving.
func loadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Endpoint:   os.Getenv("COSMOS_ENDPOINT"),
		Key:        os.Getenv("COSMOS_KEY"),
		Database:   getenv("COSMOS_DATABASE", "RideauCanalDB"),
		Collection: getenv("COSMOS_COLLECTION", "SensorAggregations"),
		Port:       getenv("PORT", "3000"),
	}
	if cfg.Endpoint == "" {
		return Config{}, fmt.Errorf("COSMOS_ENDPOINT is required")
	}
	if cfg.Key == "" {
		return Config{}, fmt.Errorf("COSMOS_KEY is required")
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
