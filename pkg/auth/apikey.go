package auth

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/lakshraina2/resume-scanner/pkg/errx"
)

// GenerateAPIKey creates a random API key and its bcrypt hash for storage
func GenerateAPIKey() (key string, hash string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", errx.Wrap(err, "failed to generate API key", errx.TypeInternal)
	}
	key = "rsk_" + hex.EncodeToString(raw)

	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", "", errx.Wrap(err, "failed to hash API key", errx.TypeInternal)
	}
	return key, string(hashed), nil
}

// VerifyAPIKey checks a presented key against its stored bcrypt hash
func VerifyAPIKey(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
