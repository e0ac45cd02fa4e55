package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// malformed values leave the current value untouched.
//
// Recognized variables: RUN_ADDRESS, STORAGE_BACKEND, USERS_TABLE,
// EMAIL_INDEX, DATABASE_DSN, AWS_REGION, AWS_BASE_ENDPOINT,
// JWT_SECRET_NAME, JWT_SECRET_ENV, JWT_EXPIRES_IN (Go duration), and
// SALT_ROUND (bcrypt cost).
//
// The signing secret itself is deliberately absent here: its fallback
// value is read by the secret resolver through the name configured in
// SecretEnvFallback.
func parseEnv(config *Config) {
	setString := func(name string, target *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*target = v
		}
	}

	setString("RUN_ADDRESS", &config.EndpointAddrHTTP)
	setString("STORAGE_BACKEND", &config.StorageBackend)
	setString("USERS_TABLE", &config.UsersTable)
	setString("EMAIL_INDEX", &config.EmailIndex)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("AWS_REGION", &config.AWSRegion)
	setString("AWS_BASE_ENDPOINT", &config.AWSBaseEndpoint)
	setString("JWT_SECRET_NAME", &config.SecretName)
	setString("JWT_SECRET_ENV", &config.SecretEnvFallback)

	if v, ok := os.LookupEnv("JWT_EXPIRES_IN"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}

	if v, ok := os.LookupEnv("SALT_ROUND"); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}
}
