package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeTokenSignature     = "TOKEN_SIGNATURE_INVALID"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeForbidden          = "PERMISSION_DENIED"
	TextCodeOAuthOnlyAccount   = "OAUTH_ONLY_ACCOUNT"
	TextCodeEmailRegistered    = "EMAIL_ALREADY_REGISTERED"
)

// ErrTokenExpired is returned by the codec when exp is strictly in the past.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed into the
// expected structure.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignature is returned when the signature does not verify under the
// configured secret.
var ErrTokenSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenSignature).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is the only failure the authentication boundary
// surfaces: expired, tampered, and malformed tokens all collapse into it so
// callers cannot probe which check failed.
var ErrInvalidCredentials = errors.New("could not validate credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned by the role gate: the caller's identity was valid
// but insufficiently privileged.
var ErrForbidden = errors.New("permission denied", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is returned when a password does not rehash to
// the stored digest. Malformed digests yield the same error.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty password input to the hasher.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrOAuthOnlyAccount is returned when a password login is attempted against
// an account provisioned through OAuth, which carries no local password.
var ErrOAuthOnlyAccount = errors.New("account has no local password", errors.CategoryAuth).
	WithTextCode(TextCodeOAuthOnlyAccount).
	WithCode(errors.CodeUnauthorized)

// ErrEmailAlreadyRegistered is returned by registration for duplicate emails.
var ErrEmailAlreadyRegistered = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeEmailRegistered).
	WithCode(errors.CodeConflict)

// ErrMissingClaims is returned when a decoded token lacks the mandatory sub
// or role claim.
var ErrMissingClaims = errors.New("token is missing required claims", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// IsForbiddenError reports whether err is a role-gate rejection rather than
// an authentication failure.
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
