package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// CookieSigner makes cookie values tamper-evident by appending an
// HMAC-SHA256 signature. The payload is not encrypted; the session token
// inside is already opaque.
type CookieSigner struct {
	secret []byte
}

// NewCookieSigner creates a signer keyed with the given secret
func NewCookieSigner(secret string) (*CookieSigner, error) {
	if secret == "" {
		return nil, errors.New("cookie secret must not be empty")
	}
	return &CookieSigner{secret: []byte(secret)}, nil
}

// Sign returns "value.signature" with a base64url-encoded signature
func (s *CookieSigner) Sign(value string) string {
	return value + "." + base64.RawURLEncoding.EncodeToString(s.mac(value))
}

// Verify checks the signature and returns the original value. Comparison
// is constant-time.
func (s *CookieSigner) Verify(signed string) (string, error) {
	idx := strings.LastIndex(signed, ".")
	if idx < 0 {
		return "", errors.New("malformed signed value")
	}

	value, sig := signed[:idx], signed[idx+1:]
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", fmt.Errorf("malformed signature: %w", err)
	}

	if !hmac.Equal(s.mac(value), want) {
		return "", errors.New("signature mismatch")
	}

	return value, nil
}

func (s *CookieSigner) mac(value string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(value))
	return h.Sum(nil)
}
