package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/ironstrike-games/studio-api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupFirstAccountBecomesAdmin(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	first, token, err := tg.gw.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, types.RoleAdmin, first.Role)
	assert.Equal(t, "Alice", first.Name)
	assert.Equal(t, "alice@example.com", first.Email)
	assert.Contains(t, first.AvatarURL, "alice@example.com")
	assert.False(t, first.JoinDate.IsZero())

	second, _, err := tg.gw.Signup(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)
	assert.Equal(t, types.RoleScout, second.Role)
}

func TestSignupConfirmationRequiredCreatesNoProfile(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	tg.creds.confirmed = false

	_, _, err := tg.gw.Signup(context.Background(), "Alice", "alice@example.com", "secret1")
	require.ErrorIs(t, err, ErrConfirmationRequired)

	// The profile row is deferred until the confirmed account first logs in.
	count, countErr := tg.profiles.Count(context.Background())
	require.NoError(t, countErr)
	assert.Zero(t, count)
}

func TestSignupProviderFailureIsAuthError(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	tg.creds.signUpErr = errors.New("provider down")

	_, _, err := tg.gw.Signup(context.Background(), "Alice", "alice@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestSignupProfileInsertFailure(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	tg.profiles.insertErr = errors.New("disk full")

	_, _, err := tg.gw.Signup(context.Background(), "Alice", "alice@example.com", "secret1")
	assert.ErrorIs(t, err, ErrProfileCreation)
}

func TestLoginReturnsProfileAndToken(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	created, _, err := tg.gw.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	profile, token, err := tg.gw.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, profile.ID)
	assert.Equal(t, types.RoleAdmin, profile.Role)
}

func TestLoginBadPassword(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	_, _, err := tg.gw.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = tg.gw.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestLoginWithoutProfileRow(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	// A credential without a matching profile row: the identity
	// authenticated but signup never finished.
	_, session, err := tg.creds.SignUp(ctx, "ghost@example.com", "secret1", nil)
	require.NoError(t, err)
	require.NotNil(t, session)

	_, _, err = tg.gw.Login(ctx, "ghost@example.com", "secret1")
	assert.ErrorIs(t, err, ErrProfileMissing)
}

func TestCurrentSessionRoundTrip(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	created, token, err := tg.gw.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	profile, ok := tg.gw.CurrentSession(ctx, token)
	require.True(t, ok)
	assert.Equal(t, created.ID, profile.ID)
}

func TestCurrentSessionFailsSoftly(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	_, ok := tg.gw.CurrentSession(ctx, "")
	assert.False(t, ok)

	_, ok = tg.gw.CurrentSession(ctx, "bogus-token")
	assert.False(t, ok)

	// Valid session, no profile row: still soft.
	_, session, err := tg.creds.SignUp(ctx, "ghost@example.com", "secret1", nil)
	require.NoError(t, err)
	_, ok = tg.gw.CurrentSession(ctx, session.Token)
	assert.False(t, ok)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	_, token, err := tg.gw.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, tg.gw.Logout(ctx, token))
	_, ok := tg.gw.CurrentSession(ctx, token)
	assert.False(t, ok)
}

func TestUpdateProfileOnlyTouchesNameAndAvatar(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	created, _, err := tg.gw.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	updated, err := tg.gw.UpdateProfile(ctx, types.UserProfile{
		ID:        created.ID,
		Name:      "Alice Renamed",
		AvatarURL: "https://example.com/alice.png",
		Email:     "attacker@example.com",
		Role:      types.RoleScout,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Renamed", updated.Name)
	assert.Equal(t, "https://example.com/alice.png", updated.AvatarURL)
	// Email and role come back from the store untouched.
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, types.RoleAdmin, updated.Role)
}

func TestUpdateProfileMissingRow(t *testing.T) {
	tg := newTestGateway(DefaultConfig())

	_, err := tg.gw.UpdateProfile(context.Background(), types.UserProfile{
		ID:   "nope",
		Name: "Nobody",
	})
	assert.ErrorIs(t, err, ErrUpdate)
}
