package config

import (
	"encoding/json"
	"os"

	"github.com/brianXcode/tezda-auth-service/internal/flagx"
	"github.com/brianXcode/tezda-auth-service/internal/timex"
)

// jsonConfig is the DTO used only for reading the optional JSON config
// file. timex.Duration accepts both "1h" strings and integer nanoseconds.
// Absent fields leave the current value untouched.
type jsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	StorageBackend        *string         `json:"storage_backend"`
	UsersTable            *string         `json:"users_table"`
	EmailIndex            *string         `json:"email_index"`
	DatabaseDSN           *string         `json:"database_dsn"`
	AWSRegion             *string         `json:"aws_region"`
	AWSBaseEndpoint       *string         `json:"aws_base_endpoint"`
	AWSAccessKey          *string         `json:"aws_access_key"`
	AWSSecretKey          *string         `json:"aws_secret_key"`
	SecretName            *string         `json:"secret_name"`
	SecretEnvFallback     *string         `json:"secret_env_fallback"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
}

// parseJSON overlays values from the JSON file given via -c/-config.
// No flag, no file. A file that cannot be read or parsed is fatal.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString := func(target *string, v *string) {
		if v != nil {
			*target = *v
		}
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.UsersTable, c.UsersTable)
	setString(&config.EmailIndex, c.EmailIndex)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AWSRegion, c.AWSRegion)
	setString(&config.AWSBaseEndpoint, c.AWSBaseEndpoint)
	setString(&config.AWSAccessKey, c.AWSAccessKey)
	setString(&config.AWSSecretKey, c.AWSSecretKey)
	setString(&config.SecretName, c.SecretName)
	setString(&config.SecretEnvFallback, c.SecretEnvFallback)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
}
