package credentials

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoTrueFixture(t *testing.T, handler http.HandlerFunc) *GoTrueService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewGoTrueService(srv.URL, "test-api-key")
	require.NoError(t, err)
	return svc
}

func TestNewGoTrueServiceValidation(t *testing.T) {
	_, err := NewGoTrueService("", "key")
	assert.Error(t, err)

	_, err = NewGoTrueService("http://localhost", " ")
	assert.Error(t, err)
}

func TestGoTrueSignUpWithSession(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("apikey"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, map[string]any{"display_name": "Alice"}, body["data"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"user": map[string]any{
				"id":            "user-1",
				"email":         "alice@example.com",
				"user_metadata": map[string]string{"display_name": "Alice"},
			},
		})
	})

	user, session, err := svc.SignUp(context.Background(), "alice@example.com", "secret1", map[string]string{"display_name": "Alice"})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "tok-123", session.Token)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Alice", user.Metadata["display_name"])
}

func TestGoTrueSignUpConfirmationPending(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		// A bare user object and no access token: confirmation email sent.
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "user-1",
			"email": "alice@example.com",
		})
	})

	user, session, err := svc.SignUp(context.Background(), "alice@example.com", "secret1", nil)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, "user-1", user.ID)
}

func TestGoTrueSignUpEmailTaken(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
	})

	_, _, err := svc.SignUp(context.Background(), "alice@example.com", "secret1", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Contains(t, err.Error(), "User already registered")
}

func TestGoTrueSignInWithPassword(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-456",
			"user": map[string]any{
				"id":    "user-1",
				"email": "alice@example.com",
			},
		})
	})

	session, err := svc.SignInWithPassword(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-456", session.Token)
	assert.Equal(t, "user-1", session.User.ID)
}

func TestGoTrueSignInBadCredentials(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	})

	_, err := svc.SignInWithPassword(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoTrueSignInUnconfirmed(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Email not confirmed"})
	})

	_, err := svc.SignInWithPassword(context.Background(), "alice@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)
}

func TestGoTrueGetUser(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"id":    "user-1",
			"email": "alice@example.com",
		})
	})

	user, err := svc.GetUser(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestGoTrueGetUserInvalidSession(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.GetUser(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestGoTrueSignOutToleratesExpiredToken(t *testing.T) {
	svc := newGoTrueFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	})

	assert.NoError(t, svc.SignOut(context.Background(), "expired"))
}
