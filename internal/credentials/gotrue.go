package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GoTrueService talks to a GoTrue-compatible auth REST API (the credential
// half of a Supabase project). The API key is sent on every request; user
// sessions are the provider's own access tokens.
type GoTrueService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoTrueService constructs a client for the provider at baseURL.
func NewGoTrueService(baseURL, apiKey string) (*GoTrueService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("gotrue url is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gotrue api key is required")
	}
	return &GoTrueService{
		baseURL: strings.TrimRight(baseURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type gotrueUser struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	UserMetadata map[string]string `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	User        *gotrueUser `json:"user"`
	// Set instead of the session fields when the provider withholds the
	// session pending email confirmation.
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueError struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return "provider error"
}

func (s *GoTrueService) SignUp(ctx context.Context, email, password string, metadata map[string]string) (User, *Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		body["data"] = metadata
	}

	resp, err := s.post(ctx, "/signup", "", body)
	if err != nil {
		return User{}, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusConflict {
		return User{}, nil, fmt.Errorf("%w: %s", ErrEmailTaken, readProviderError(resp.Body))
	}
	if resp.StatusCode >= 400 {
		return User{}, nil, fmt.Errorf("gotrue signup: %s", readProviderError(resp.Body))
	}

	var payload gotrueSession
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, nil, fmt.Errorf("gotrue signup: decode response: %w", err)
	}

	// A bare user object (no access token) means confirmation is pending
	// and no session exists yet.
	if payload.AccessToken == "" {
		return User{ID: payload.ID, Email: payload.Email, Metadata: metadata}, nil, nil
	}
	if payload.User == nil {
		return User{}, nil, errors.New("gotrue signup: session without user")
	}
	user := User{ID: payload.User.ID, Email: payload.User.Email, Metadata: payload.User.UserMetadata}
	return user, &Session{Token: payload.AccessToken, User: user}, nil
}

func (s *GoTrueService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	resp, err := s.post(ctx, "/token?grant_type=password", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		msg := readProviderError(resp.Body)
		if strings.Contains(strings.ToLower(msg), "not confirmed") {
			return nil, fmt.Errorf("%w: %s", ErrEmailNotConfirmed, msg)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gotrue token: %s", readProviderError(resp.Body))
	}

	var payload gotrueSession
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("gotrue token: decode response: %w", err)
	}
	if payload.AccessToken == "" || payload.User == nil {
		return nil, errors.New("gotrue token: incomplete session")
	}
	user := User{ID: payload.User.ID, Email: payload.User.Email, Metadata: payload.User.UserMetadata}
	return &Session{Token: payload.AccessToken, User: user}, nil
}

func (s *GoTrueService) GetUser(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/user", nil)
	if err != nil {
		return User{}, err
	}
	s.setHeaders(req, token)

	resp, err := s.client.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return User{}, ErrInvalidSession
	}
	if resp.StatusCode >= 400 {
		return User{}, fmt.Errorf("gotrue user: %s", readProviderError(resp.Body))
	}

	var payload gotrueUser
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, fmt.Errorf("gotrue user: decode response: %w", err)
	}
	return User{ID: payload.ID, Email: payload.Email, Metadata: payload.UserMetadata}, nil
}

func (s *GoTrueService) SignOut(ctx context.Context, token string) error {
	resp, err := s.post(ctx, "/logout", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("gotrue logout: %s", readProviderError(resp.Body))
	}
	return nil
}

func (s *GoTrueService) post(ctx context.Context, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	s.setHeaders(req, token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.client.Do(req)
}

func (s *GoTrueService) setHeaders(req *http.Request, token string) {
	req.Header.Set("apikey", s.apiKey)
	if token == "" {
		token = s.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func readProviderError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "provider error"
	}
	var payload gotrueError
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	return payload.text()
}
