package uniuri

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// SessionIDLen gives ~190 bits of entropy with StdChars.
const SessionIDLen = 32

// StdChars is the alphabet of generated ids.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// ErrCharset is returned for alphabets shorter than 2 or longer than 256 bytes.
var ErrCharset = errors.New("uniuri: charset must hold between 2 and 256 characters")

// NewSessionID returns a SessionIDLen long id made of StdChars.
func NewSessionID() (string, error) {
	return NewLenChars(SessionIDLen, StdChars)
}

// NewLenChars returns a random string of length characters drawn uniformly from chars.
// Random bytes that would bias the modulo are rejected.
func NewLenChars(length int, chars []byte) (string, error) {
	if length <= 0 {
		return "", nil
	}

	clen := len(chars)
	if clen < 2 || clen > 256 { //nolint:mnd
		return "", ErrCharset
	}

	limit := 256 - (256 % clen) //nolint:mnd
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("uniuri: reading random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
