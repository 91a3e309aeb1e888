// Package credentials abstracts the session/credential provider: the opaque
// service that stores email+password pairs, issues and validates sessions,
// and assigns the stable user identifier every profile row is keyed by.
package credentials

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned when the email/password pair is
	// rejected by the provider.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotConfirmed is returned on sign-in when the credential
	// exists but the account awaits out-of-band confirmation.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrEmailTaken is returned on sign-up when a credential already
	// exists for the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidSession is returned when a session token is missing,
	// malformed, expired, or revoked.
	ErrInvalidSession = errors.New("invalid or expired session")
)

// User is the provider's own record of an identity. ID is the stable
// identifier shared with the profiles table.
type User struct {
	ID       string
	Email    string
	Metadata map[string]string
}

// Session is an authenticated session issued by the provider.
type Session struct {
	Token string
	User  User
}

// Service is the credential provider consumed by the gateway. SignUp returns
// a nil session when the provider requires out-of-band confirmation before
// one can be issued; the caller must not create a profile row in that case.
type Service interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (User, *Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	GetUser(ctx context.Context, token string) (User, error)
	SignOut(ctx context.Context, token string) error
}
