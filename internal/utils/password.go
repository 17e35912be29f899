package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters; credentials are stored as hex(key) + "." + hex(salt).
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16

	credentialDelimiter = "."
)

// HashPassword derives a salted scrypt credential from a plaintext password.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key, err := deriveKey(password, salt)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + credentialDelimiter + salt, nil
}

// CheckPasswordHash reports whether password matches the stored credential.
// Any malformed credential simply fails to match.
func CheckPasswordHash(password, credential string) bool {
	hashHex, salt, found := strings.Cut(credential, credentialDelimiter)
	if !found || hashHex == "" || salt == "" {
		return false
	}

	stored, err := hex.DecodeString(hashHex)
	if err != nil || len(stored) != scryptKeyLen {
		return false
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(key, stored) == 1
}

func deriveKey(password, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return key, nil
}
