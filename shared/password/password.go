// Package password hashes and checks staff and client credentials with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxLength is the bcrypt input limit in bytes; longer inputs would be silently truncated.
const maxLength = 72

var (
	ErrEmpty    = errors.New("password is empty")
	ErrTooLong  = fmt.Errorf("password is longer than %d bytes", maxLength)
	ErrMismatch = errors.New("password does not match")
)

// Hash returns the bcrypt hash of plain.
func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmpty
	case len(plain) > maxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports ErrMismatch when plain does not produce hashed, including when either is empty.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}

	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	return nil
}
