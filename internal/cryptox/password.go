// Package cryptox implements password hashing for stored credentials.
//
// Digests are PBKDF2-HMAC-SHA256 with a random per-call salt, encoded as
// "iterations.salt.key" with base64 salt and key, so verification is
// self-describing and parameters can be raised without breaking stored
// values.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	keySize    = 32
	iterations = 100_000
)

// HashPassword derives a storable digest from a plaintext password.
// Two calls with the same password produce different digests because the
// salt is random.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation error: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)

	return strings.Join([]string{
		strconv.Itoa(iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, "."), nil
}

// VerifyPassword reports whether password matches the stored digest.
// Malformed digests verify false rather than returning an error, so a
// corrupt stored value is indistinguishable from a wrong password
// upstream. The comparison is constant-time.
func VerifyPassword(password, digest string) bool {
	if strings.TrimSpace(digest) == "" {
		return false
	}

	parts := strings.Split(digest, ".")
	if len(parts) != 3 {
		return false
	}

	iter, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || iter <= 0 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}

	expected, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[2]))
	if err != nil || len(expected) == 0 {
		return false
	}

	actual := pbkdf2.Key([]byte(password), salt, iter, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(actual, expected) == 1
}
