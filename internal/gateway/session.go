package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ironstrike-games/studio-api/internal/store"
	"github.com/ironstrike-games/studio-api/types"
)

const displayNameMetadataKey = "display_name"

// CurrentSession resolves the profile behind a session token. It fails
// softly: any failure — no token, invalid session, missing profile row —
// yields ok=false with a log line, never an error.
func (g *Gateway) CurrentSession(ctx context.Context, token string) (types.UserProfile, bool) {
	if token == "" {
		return types.UserProfile{}, false
	}

	user, err := g.creds.GetUser(ctx, token)
	if err != nil {
		g.log.WithError(err).Debug("session bootstrap: no valid session")
		return types.UserProfile{}, false
	}

	profile, err := g.profiles.GetByID(ctx, user.ID)
	if err != nil {
		g.log.WithError(err).WithField("user_id", user.ID).Debug("session bootstrap: profile lookup failed")
		return types.UserProfile{}, false
	}
	return profile, true
}

// Login verifies credentials with the provider and returns the session token
// alongside the matching profile.
func (g *Gateway) Login(ctx context.Context, email, password string) (types.UserProfile, string, error) {
	session, err := g.creds.SignInWithPassword(ctx, email, password)
	if err != nil {
		return types.UserProfile{}, "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	profile, err := g.profiles.GetByID(ctx, session.User.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.UserProfile{}, "", fmt.Errorf("%w: user %s", ErrProfileMissing, session.User.ID)
		}
		return types.UserProfile{}, "", err
	}
	return profile, session.Token, nil
}

// Signup creates a credential record and its matching profile row. The first
// profile ever created is granted Admin; every later signup is a Scout. The
// count-then-insert sequence is not atomic: two concurrent first signups can
// both read zero and both become Admin. The store would need a serializable
// guard to prevent that; this module does not provide one.
func (g *Gateway) Signup(ctx context.Context, name, email, password string) (types.UserProfile, string, error) {
	user, session, err := g.creds.SignUp(ctx, email, password, map[string]string{
		displayNameMetadataKey: name,
	})
	if err != nil {
		return types.UserProfile{}, "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	// No session means the provider wants out-of-band confirmation first.
	// Creating the profile row now would orphan it if confirmation never
	// happens, so it is deferred to the first login.
	if session == nil {
		return types.UserProfile{}, "", ErrConfirmationRequired
	}

	count, err := g.profiles.Count(ctx)
	if err != nil {
		return types.UserProfile{}, "", fmt.Errorf("%w: %v", ErrProfileCreation, err)
	}
	role := types.RoleScout
	if count == 0 {
		role = types.RoleAdmin
	}

	profile := types.UserProfile{
		ID:        user.ID,
		Name:      name,
		Email:     email,
		Role:      role,
		AvatarURL: defaultAvatarURL(email),
		JoinDate:  time.Now().UTC(),
	}
	if err := g.profiles.Insert(ctx, profile); err != nil {
		// The credential record already exists at this point; surface
		// the orphaned state distinctly so the caller can react.
		return types.UserProfile{}, "", fmt.Errorf("%w: %v", ErrProfileCreation, err)
	}
	return profile, session.Token, nil
}

// Logout invalidates the session with the provider.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	return g.creds.SignOut(ctx, token)
}

// UpdateProfile applies the caller-mutable fields — name and avatar URL —
// to the profile row and returns the stored result. Email and role in the
// input are ignored.
func (g *Gateway) UpdateProfile(ctx context.Context, profile types.UserProfile) (types.UserProfile, error) {
	if err := g.profiles.UpdateNameAvatar(ctx, profile.ID, profile.Name, profile.AvatarURL); err != nil {
		return types.UserProfile{}, fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	updated, err := g.profiles.GetByID(ctx, profile.ID)
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	return updated, nil
}

func defaultAvatarURL(email string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + email
}
