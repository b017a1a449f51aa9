package config

import (
	"os"
)

type EnvConfig struct {
	ClientId      string
	ClientSecret  string
	RedisPassword string
}

func loadFromEnv() EnvConfig {
	return EnvConfig{
		ClientId:      readStringValueFromEnv("GOIDC_CLIENT_ID", ""),
		ClientSecret:  readStringValueFromEnv("GOIDC_CLIENT_SECRET", ""),
		RedisPassword: readStringValueFromEnv("GOIDC_REDIS_PASSWORD", ""),
	}
}

// readStringValueFromEnv reads a string value from the supplied environment variable,
// if the value is not set, i.e empty, the the supplied default is returned
func readStringValueFromEnv(varName, defaultValue string) string {
	value := os.Getenv(varName)
	if value == "" {
		return defaultValue
	}
	return value
}
