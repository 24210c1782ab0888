package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
)

// tokenEncoding is lowercase base32 without padding, which keeps tokens
// URL- and header-safe.
var tokenEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// tokenByteLen gives 160 bits of entropy per session token.
const tokenByteLen = 20

// GenerateSessionToken returns a new opaque bearer token. The plaintext
// value is handed to the client exactly once and never persisted.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, tokenByteLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return tokenEncoding.EncodeToString(bytes), nil
}

// SessionIDFromToken derives the stored session identifier from a bearer
// token. The transform is one-way: a leaked sessions table cannot be
// replayed as valid credentials.
func SessionIDFromToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ExtractBearerToken extracts the token from an Authorization header value.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is empty")
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}
	return authHeader, nil
}
