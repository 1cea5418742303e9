package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validator checks a submitted credential pair against the configured pair,
// guarded by the limiter. It holds no mutable state of its own.
type Validator struct {
	limiter  *Limiter
	username string
	password string
}

func NewValidator(limiter *Limiter, username, password string) *Validator {
	return &Validator{limiter: limiter, username: username, password: password}
}

// Validate reports whether the pair matches. A rate-limited attempt returns a
// *RateLimitError; a plain mismatch returns (false, nil) so the caller can
// tell the two apart. The context is accepted so a remote credential check
// can be substituted without changing the contract.
func (v *Validator) Validate(ctx context.Context, username, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	res := v.limiter.Check(username)
	if !res.Allowed {
		return false, &RateLimitError{RetryAfter: res.RetryAfter}
	}

	// Both fields must match; no partial credit, and no distinction between
	// an unknown username and a wrong password.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username))
	passOK := v.comparePassword(password)
	if userOK&passOK != 1 {
		return false, nil
	}

	v.limiter.Reset(username)
	return true, nil
}

func (v *Validator) comparePassword(password string) int {
	// A bcrypt-hashed deployment secret is honored so the plaintext need not
	// live in the environment; anything else is compared verbatim.
	if strings.HasPrefix(v.password, "$2") {
		if bcrypt.CompareHashAndPassword([]byte(v.password), []byte(password)) == nil {
			return 1
		}
		return 0
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(v.password))
}
