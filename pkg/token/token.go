// Package token derives the short alphanumeric tokens used to disguise the
// data feed location. A token is never a security boundary by itself.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
)

// Length is the number of characters in every token.
const Length = 16

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Pattern matches a well-formed token. Stable tokens are hex and therefore
// match it as well.
var Pattern = regexp.MustCompile(`^[a-z0-9]{16}$`)

// Generate returns a token for day.
//
// With stable set and a non-empty salt the token is the first 16 hex
// characters of SHA-256("<UTC date>::<salt>"), so every run on the same UTC
// calendar day agrees on it. In every other case, including stable with an
// empty salt, the token is drawn uniformly at random; an empty salt is never
// hashed as if it were a secret.
func Generate(stable bool, salt string, day time.Time) (string, error) {
	if stable && salt != "" {
		return Daily(salt, day), nil
	}
	return Random()
}

// Daily returns the salted token for the UTC calendar date of day.
func Daily(salt string, day time.Time) string {
	payload := fmt.Sprintf("%s::%s", day.UTC().Format(time.DateOnly), salt)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:Length]
}

// Random returns a token sampled from crypto/rand. Bytes at or above the
// largest multiple of the alphabet size are rejected so every symbol is
// equally likely.
func Random() (string, error) {
	const limit = 256 - 256%len(alphabet)

	out := make([]byte, 0, Length)
	buf := make([]byte, Length*2)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}
