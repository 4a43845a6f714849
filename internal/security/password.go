package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashMethod = "pbkdf2"
	hashDigest = "sha256"
	saltBytes  = 12
	keyLength  = 32
)

// DefaultIterations is the PBKDF2 work factor for new hashes. Existing
// hashes keep the iteration count they were created with.
var DefaultIterations = 600000

// HashPassword derives a salted PBKDF2-HMAC-SHA256 hash encoded as
// pbkdf2:sha256:<iterations>$<salt>$<hex digest>
func HashPassword(password string) (string, error) {
	saltRaw := make([]byte, saltBytes)
	if _, err := rand.Read(saltRaw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := base64.RawURLEncoding.EncodeToString(saltRaw)

	digest := pbkdf2.Key([]byte(password), []byte(salt), DefaultIterations, keyLength, sha256.New)

	return fmt.Sprintf("%s:%s:%d$%s$%s", hashMethod, hashDigest, DefaultIterations, salt, hex.EncodeToString(digest)), nil
}

// CheckPassword reports whether password matches the encoded hash.
// Malformed hashes never match.
func CheckPassword(password, encoded string) bool {
	iterations, salt, want, ok := parseHash(encoded)
	if !ok {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parseHash(encoded string) (iterations int, salt string, digest []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return 0, "", nil, false
	}

	method := strings.Split(parts[0], ":")
	if len(method) != 3 || method[0] != hashMethod || method[1] != hashDigest {
		return 0, "", nil, false
	}

	iterations, err := strconv.Atoi(method[2])
	if err != nil || iterations <= 0 {
		return 0, "", nil, false
	}

	digest, err = hex.DecodeString(parts[2])
	if err != nil || len(digest) == 0 {
		return 0, "", nil, false
	}

	return iterations, parts[1], digest, parts[1] != ""
}
