package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// OAuthPasswordSentinel is stored in place of a digest for accounts
// provisioned through an OAuth provider. It can never match a bcrypt compare,
// and the identity provider rejects password logins against it outright.
const OAuthPasswordSentinel = "oauth"

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password. Malformed digests report the same
// mismatch error rather than failing differently.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
