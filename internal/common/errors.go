// Package common defines the sentinel errors that make up the service's
// error taxonomy. Inner layers return (or wrap) these values and callers
// match them with errors.Is; only the transport boundary translates them
// into wire status codes and disclosed messages.
package common

import "errors"

var (
	// Directory-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorAccessDenied  = errors.New("access denied")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInternal     = errors.New("internal error")

	// Token issuance errors.
	ErrorIncompleteIdentity = errors.New("incomplete identity")
	ErrorSecretUnavailable  = errors.New("secret unavailable")
)
