// Package secrets resolves the token-signing secret, preferring a managed
// secret store and falling back to a statically configured value.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/logging"
)

// Source tags where a resolved secret came from. Used for observability
// only; it never changes how the secret is used.
type Source string

const (
	SourceManaged  Source = "managed"
	SourceFallback Source = "fallback"
)

// SecretsManagerAPI is the subset of the Secrets Manager client the
// resolver calls.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type cached struct {
	value  string
	source Source
}

// Resolver implements the fallback chain: managed store first, then a
// value looked up by name through lookupEnv. Store failures are non-fatal
// and trigger the fallback; only the absence of both sources is an error.
//
// Successful resolutions are cached for the process lifetime. Failures are
// never cached, so a later call retries both sources.
type Resolver struct {
	client    SecretsManagerAPI
	lookupEnv func(string) (string, bool)
	logger    logging.Logger

	mu    sync.Mutex
	cache map[string]cached
}

// NewResolver builds a Resolver. lookupEnv is injected (os.LookupEnv in
// production) so the fallback source is substitutable in tests.
func NewResolver(client SecretsManagerAPI, lookupEnv func(string) (string, bool), logger logging.Logger) *Resolver {
	return &Resolver{
		client:    client,
		lookupEnv: lookupEnv,
		logger:    logger.With("module", "secrets"),
		cache:     make(map[string]cached),
	}
}

// Resolve returns the secret value for secretName and where it came from.
//
// A "not found" from the managed store falls back silently (warn level);
// any other store failure also falls back but is logged at error level.
// If the fallback name yields nothing either, Resolve fails with
// common.ErrorSecretUnavailable.
func (r *Resolver) Resolve(ctx context.Context, secretName, envFallbackName string) (string, Source, error) {
	// The fallback name is part of the identity: the same managed name with
	// a different fallback may legitimately resolve to a different value.
	key := secretName + "\x00" + envFallbackName

	r.mu.Lock()
	if c, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return c.value, c.source, nil
	}
	r.mu.Unlock()

	value, source, err := r.resolve(ctx, secretName, envFallbackName)
	if err != nil {
		return "", "", err
	}

	r.mu.Lock()
	r.cache[key] = cached{value: value, source: source}
	r.mu.Unlock()

	return value, source, nil
}

func (r *Resolver) resolve(ctx context.Context, secretName, envFallbackName string) (string, Source, error) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})

	switch {
	case err == nil:
		if out.SecretString != nil && *out.SecretString != "" {
			r.logger.Info(ctx, "secret resolved from managed store", "secret", secretName)
			return *out.SecretString, SourceManaged, nil
		}
		r.logger.Warn(ctx, "managed secret has no string value, falling back", "secret", secretName)
	case isNotFound(err):
		r.logger.Warn(ctx, "secret not found in managed store, falling back", "secret", secretName)
	default:
		r.logger.Error(ctx, "managed store lookup failed, falling back", "secret", secretName, "error", err.Error())
	}

	if value, ok := r.lookupEnv(envFallbackName); ok && value != "" {
		r.logger.Info(ctx, "secret resolved from fallback", "name", envFallbackName)
		return value, SourceFallback, nil
	}

	return "", "", fmt.Errorf("%w: secret %q not in managed store and fallback %q is unset",
		common.ErrorSecretUnavailable, secretName, envFallbackName)
}

func isNotFound(err error) bool {
	var rnf *types.ResourceNotFoundException
	return errors.As(err, &rnf)
}
