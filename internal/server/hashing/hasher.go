// Package hashing provides one-way password hashing and verification.
package hashing

import "errors"

// ErrInvalidCost is returned when a hasher is constructed with a work
// factor outside the algorithm's supported range.
var ErrInvalidCost = errors.New("invalid hash cost")

// PasswordHasher hashes plaintext passwords and verifies candidates
// against stored hashes.
type PasswordHasher interface {
	// Hash produces a salted one-way hash of password. Salting is
	// internal; two calls on the same input produce different outputs.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A mismatch is
	// (false, nil); an error means the stored hash is malformed.
	Verify(password, hash string) (bool, error)
}
