package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltBytes = 8
	keyLen    = 64

	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

var ErrMalformedSalt = errors.New("malformed password salt")

// HashPassword derives a fresh (hash, salt) pair for plaintext. Both values are hex.
// The salt is fed to scrypt in its hex form.
func HashPassword(plaintext string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("read salt: %w", err)
	}
	salt = hex.EncodeToString(raw)

	derived, err := derive(plaintext, salt)
	if err != nil {
		return "", "", err
	}
	return hex.EncodeToString(derived), salt, nil
}

// VerifyPassword reports whether plaintext matches expectedHash under salt.
// A mismatch is (false, nil); only an undecodable salt is an error.
func VerifyPassword(plaintext, salt, expectedHash string) (bool, error) {
	if _, err := hex.DecodeString(salt); err != nil || salt == "" {
		return false, ErrMalformedSalt
	}

	derived, err := derive(plaintext, salt)
	if err != nil {
		return false, err
	}

	got := []byte(hex.EncodeToString(derived))
	want := []byte(strings.ToLower(expectedHash))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func derive(plaintext, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(plaintext), []byte(salt), scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt: %w", err)
	}
	return key, nil
}
