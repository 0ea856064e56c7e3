package users

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashes are stored as base64(salt) || base64(key): a 16 byte random
// salt and a 32 byte PBKDF2-HMAC-SHA256 key at 10k iterations. The base64 salt
// prefix is always 24 characters, which is how verification splits the blob.
const (
	saltLen          = 16
	keyLen           = 32
	pbkdf2Iterations = 10_000

	saltEncodedLen = 24 // base64.StdEncoding.EncodedLen(saltLen)
)

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)

	return base64.StdEncoding.EncodeToString(salt) + base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword fails closed: an empty or malformed blob is never a match.
// The key comparison is constant time.
func VerifyPassword(password, hashBlob string) bool {
	if len(hashBlob) <= saltEncodedLen {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(hashBlob[:saltEncodedLen])
	if err != nil || len(salt) != saltLen {
		return false
	}
	stored, err := base64.StdEncoding.DecodeString(hashBlob[saltEncodedLen:])
	if err != nil || len(stored) != keyLen {
		return false
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)

	return subtle.ConstantTimeCompare(key, stored) == 1
}
