// Package auth builds and signs the time-bounded identity assertions
// returned on login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/logging"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
	"github.com/brianXcode/tezda-auth-service/internal/server/secrets"
)

// Claims is the signed assertion payload: the registered claims plus the
// subject's email and id.
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	UserID string `json:"id"`
}

// SecretSource resolves the signing secret per issuance.
type SecretSource interface {
	Resolve(ctx context.Context, secretName, envFallbackName string) (string, secrets.Source, error)
}

// Issuer signs identity assertions with HS256. The signing secret is
// resolved through a SecretSource on each issuance (the source may cache).
type Issuer struct {
	secrets         SecretSource
	secretName      string
	envFallbackName string
	validity        time.Duration
	logger          logging.Logger
}

func NewIssuer(s SecretSource, secretName, envFallbackName string, validity time.Duration, logger logging.Logger) *Issuer {
	return &Issuer{
		secrets:         s,
		secretName:      secretName,
		envFallbackName: envFallbackName,
		validity:        validity,
		logger:          logger.With("module", "token_issuer"),
	}
}

// Issue returns a signed token asserting the user's identity, expiring
// after the configured validity. The identity must carry a non-empty id
// and email; directory records missing either are rejected with
// common.ErrorIncompleteIdentity.
func (i *Issuer) Issue(ctx context.Context, user *models.User) (string, error) {
	if user == nil || user.ID == "" || user.Email == "" {
		return "", fmt.Errorf("%w: user email and userId are required", common.ErrorIncompleteIdentity)
	}

	secret, source, err := i.secrets.Resolve(ctx, i.secretName, i.envFallbackName)
	if err != nil {
		if errors.Is(err, common.ErrorSecretUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("resolving signing secret: %w", err)
	}
	i.logger.Debug(ctx, "signing secret resolved", "source", string(source))

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		Email:  user.Email,
		UserID: user.ID,
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}
