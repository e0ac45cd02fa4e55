// Package services contains the server-side business logic. This file
// implements AuthService, which orchestrates registration and login over
// the directory, the password hasher, and the token issuer.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/logging"
	"github.com/brianXcode/tezda-auth-service/internal/server/directory"
	"github.com/brianXcode/tezda-auth-service/internal/server/hashing"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
)

// TokenIssuer signs identity assertions for authenticated users.
type TokenIssuer interface {
	Issue(ctx context.Context, user *models.User) (string, error)
}

// RegisterRequest carries the fields accepted at registration. Role and
// FullName are optional; defaults are applied by Register.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Role     models.Role
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	User  *models.User
}

// AuthService implements the Register and Login use cases. It holds no
// request state; every call is a single linear pass, and all mutual
// exclusion lives in the directory adapter.
type AuthService struct {
	dir    directory.Directory
	hasher hashing.PasswordHasher
	issuer TokenIssuer
	logger logging.Logger
}

func NewAuthService(dir directory.Directory, hasher hashing.PasswordHasher, issuer TokenIssuer, logger logging.Logger) *AuthService {
	return &AuthService{
		dir:    dir,
		hasher: hasher,
		issuer: issuer,
		logger: logger.With("module", "auth_service"),
	}
}

// Register creates a new identity record. The read-before-write lookup is
// advisory; the directory's conditional insert is the authoritative guard,
// so a lost race still comes back as ErrorAlreadyExists. No token is
// issued at registration.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	_, err := s.dir.FindByEmail(ctx, req.Email)
	if err == nil {
		s.logger.Warn(ctx, "registration attempt with existing email", "email", req.Email)
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, s.storeFailure(ctx, "registration lookup failed", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, fmt.Errorf("%w: hashing password", common.ErrorInternal)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		CreatedAt:    time.Now().UTC(),
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := s.dir.Insert(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Warn(ctx, "lost registration race", "email", req.Email)
			return nil, err
		}
		return nil, s.storeFailure(ctx, "registration insert failed", err)
	}

	s.logger.Info(ctx, "user registered", "userId", user.ID)
	return user, nil
}

// Login verifies the credentials and issues a token. An unknown email is
// ErrorNotFound and a wrong password is ErrorUnauthorized; anything
// unexpected collapses to ErrorInternal so no store detail leaks.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login attempt for unknown user", "email", email)
			return nil, err
		}
		return nil, s.storeFailure(ctx, "login lookup failed", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is malformed", "userId", user.ID, "error", err.Error())
		return nil, fmt.Errorf("%w: verifying password", common.ErrorInternal)
	}
	if !ok {
		s.logger.Warn(ctx, "invalid password attempt", "userId", user.ID)
		return nil, common.ErrorUnauthorized
	}

	token, err := s.issuer.Issue(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorIncompleteIdentity) {
			return nil, err
		}
		s.logger.Error(ctx, "token issuance failed", "userId", user.ID, "error", err.Error())
		return nil, fmt.Errorf("%w: issuing token", common.ErrorInternal)
	}

	s.logger.Info(ctx, "login successful", "userId", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

// storeFailure logs the full error and returns the disclosed kind:
// access-denied passes through, everything else becomes internal.
func (s *AuthService) storeFailure(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err.Error())
	if errors.Is(err, common.ErrorAccessDenied) {
		return err
	}
	return fmt.Errorf("%w: %s", common.ErrorInternal, msg)
}
