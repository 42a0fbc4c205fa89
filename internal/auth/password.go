package auth

import (
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor of new hashes.
const BcryptCost = 12

const (
	argon2idPrefix = "$argon2id$"
	bcryptMaxLen   = 72
)

// HashPassword returns a bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrPasswordEmpty
	}

	if len(plain) > bcryptMaxLen {
		return "", ErrPasswordTooLong
	}

	h, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}

	return string(h), nil
}

// VerifyPassword compares plain with a bcrypt or Argon2id hash in constant time.
// A malformed hash and a wrong password both return false.
func VerifyPassword(plain, hash string) bool {
	if strings.HasPrefix(hash, argon2idPrefix) {
		match, err := argon2id.ComparePasswordAndHash(plain, hash)
		if err != nil {
			log.Debug().Err(err).Msg("failed to verify argon2id password")
			return false
		}

		return match
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IsHash reports whether s looks like a hash VerifyPassword understands.
func IsHash(s string) bool {
	if strings.HasPrefix(s, argon2idPrefix) {
		return true
	}

	_, err := bcrypt.Cost([]byte(s))

	return err == nil
}
