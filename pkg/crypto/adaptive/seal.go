package adaptive

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const envelopeVersion = "sp1"

// ErrMalformedEnvelope is returned by Open for input that is not a sealed envelope.
var ErrMalformedEnvelope = errors.New("adaptive: malformed envelope")

// DeriveKey derives a KeySize key from secret for the given purpose.
func DeriveKey(secret []byte, purpose string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("adaptive: empty secret")
	}
	r := hkdf.New(sha256.New, secret, nil, []byte("sharepay/"+purpose))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("adaptive: derive key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext with c and wraps it in a printable envelope.
func Seal(c Cipher, plaintext, additionalData []byte) (string, error) {
	ct, err := c.Encrypt(plaintext, additionalData)
	if err != nil {
		return "", err
	}
	return envelopeVersion + "." + string(c.Type()) + "." + base64.RawURLEncoding.EncodeToString(ct), nil
}

// Open decrypts an envelope produced by Seal. The cipher is chosen from
// the envelope, so values sealed on another architecture still open.
func Open(key []byte, envelope string, additionalData []byte) ([]byte, error) {
	parts := strings.SplitN(strings.TrimSpace(envelope), ".", 3)
	if len(parts) != 3 || parts[0] != envelopeVersion {
		return nil, ErrMalformedEnvelope
	}

	c, err := NewWithType(key, CipherType(parts[1]))
	if err != nil {
		return nil, err
	}

	ct, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return c.Decrypt(ct, additionalData)
}
