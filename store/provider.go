package store

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/portfolio-api/auth"
)

// UserProvider adapts the users repository to the auth.IdentityProvider
// interface consumed by the authenticator.
type UserProvider struct {
	users  Users
	logger auth.Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(users Users) *UserProvider {
	return &UserProvider{
		users:  users,
		logger: nil,
	}
}

func (u *UserProvider) WithLogger(l auth.Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare to the password, and return identity
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	user, err := u.users.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	// OAuth provisioned accounts carry the sentinel digest; reject the
	// password path outright instead of letting the compare fail and mask
	// the real reason.
	if user.IsOAuthOnly() {
		return nil, auth.ErrOAuthOnlyAccount
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, auth.ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	user, err := u.users.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, err
	}

	return identityFromUser(user), nil
}

func identityFromUser(user *User) auth.Identity {
	return authIdentity{
		id:    user.ID.String(),
		email: user.Email,
		role:  string(user.Role),
	}
}

type authIdentity struct {
	id    string
	email string
	role  string
}

func (a authIdentity) ID() string    { return a.id }
func (a authIdentity) Email() string { return a.email }
func (a authIdentity) Role() string  { return a.role }

var _ auth.Identity = authIdentity{}
var _ auth.IdentityProvider = (*UserProvider)(nil)
