package auth

import "strings"

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned at registration and OAuth
	// provisioning.
	RoleUser UserRole = "user"
	// RoleAdmin is the privileged role; the only role that may create users
	// with an explicit role or mutate blog content.
	RoleAdmin UserRole = "admin"
)

// NormalizeRole trims surrounding whitespace and lowercases a role so that
// gate checks are insensitive to casing and padding in stored values.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Authorize allows or denies a principal against a single required role.
// Comparison is case-insensitive and ignores leading/trailing whitespace on
// both sides. There is no role hierarchy: admin does not imply user.
func Authorize(principal Principal, requiredRole string) error {
	if NormalizeRole(principal.Role) != NormalizeRole(requiredRole) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeSelfOrRole succeeds if the principal holds the required role or
// owns the resource identified by ownerEmail. Email comparison is exact,
// matching how emails are stored.
func AuthorizeSelfOrRole(principal Principal, requiredRole, ownerEmail string) error {
	if principal.Email == ownerEmail {
		return nil
	}
	return Authorize(principal, requiredRole)
}
