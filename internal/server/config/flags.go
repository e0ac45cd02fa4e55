package config

import (
	"flag"
	"os"
	"time"

	"github.com/brianXcode/tezda-auth-service/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   storage backend: dynamo | postgres | memory
//	-t string   DynamoDB users table name
//	-i string   DynamoDB email index name
//	-d string   PostgreSQL DSN
//	-r string   AWS region
//	-e string   AWS base endpoint (local stacks)
//	-n string   signing secret name in the managed store
//	-f string   environment variable holding the fallback secret
//	-x int      token validity, minutes
//	-b int      bcrypt cost
//
// os.Args is filtered to just these flags first, so the config-file flags
// (-c/-config) and flags owned by other components do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-i", "-d", "-r", "-e", "-n", "-f", "-x", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (dynamo|postgres|memory)")
	fs.StringVar(&config.UsersTable, "t", config.UsersTable, "users table name")
	fs.StringVar(&config.EmailIndex, "i", config.EmailIndex, "email index name")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AWSRegion, "r", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSBaseEndpoint, "e", config.AWSBaseEndpoint, "AWS base endpoint")
	fs.StringVar(&config.SecretName, "n", config.SecretName, "signing secret name")
	fs.StringVar(&config.SecretEnvFallback, "f", config.SecretEnvFallback, "fallback secret env var name")

	tokenValidity := fs.Int("x", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
