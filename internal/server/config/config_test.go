package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, BackendMemory, c.StorageBackend)
	assert.Equal(t, "users", c.UsersTable)
	assert.Equal(t, "EmailIndex", c.EmailIndex)
	assert.Equal(t, "us-east-1", c.AWSRegion)
	assert.Equal(t, "auth/jwt-secret", c.SecretName)
	assert.Equal(t, "JWT_SECRET", c.SecretEnvFallback)
	assert.Equal(t, 1*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("STORAGE_BACKEND", BackendDynamo)
	t.Setenv("USERS_TABLE", "identities")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("SALT_ROUND", "12")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP)
	assert.Equal(t, BackendDynamo, c.StorageBackend)
	assert.Equal(t, "identities", c.UsersTable)
	assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, 12, c.BcryptCost)
}

func TestParseEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "later")
	t.Setenv("SALT_ROUND", "many")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 1*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, BackendMemory, c.StorageBackend)
	assert.Equal(t, 1*time.Hour, c.TokenValidityDuration)
}
