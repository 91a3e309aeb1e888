package credentials

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const pgUniqueViolation = "23505"

// LocalService is a self-hosted credential backend over the credentials
// table: bcrypt password hashing and stateless HS256 JWT sessions with the
// credential id as subject.
type LocalService struct {
	db                  *sql.DB
	secret              []byte
	tokenTTL            time.Duration
	requireConfirmation bool
}

// NewLocalService constructs the local backend. When requireConfirmation is
// set, sign-ups are stored unconfirmed and no session is issued until the
// account is confirmed out of band.
func NewLocalService(db *sql.DB, jwtSecret string, tokenTTL time.Duration, requireConfirmation bool) (*LocalService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &LocalService{
		db:                  db,
		secret:              []byte(jwtSecret),
		tokenTTL:            tokenTTL,
		requireConfirmation: requireConfirmation,
	}, nil
}

func (s *LocalService) SignUp(ctx context.Context, email, password string, metadata map[string]string) (User, *Session, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, nil, err
	}

	const query = `
		INSERT INTO credentials (email, password_hash, confirmed, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id string
	err = s.db.QueryRowContext(ctx, query, email, string(hashed), !s.requireConfirmation, time.Now()).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return User{}, nil, ErrEmailTaken
		}
		return User{}, nil, err
	}

	user := User{ID: id, Email: email, Metadata: metadata}
	if s.requireConfirmation {
		return user, nil, nil
	}

	token, err := s.issueToken(id)
	if err != nil {
		return User{}, nil, err
	}
	return user, &Session{Token: token, User: user}, nil
}

func (s *LocalService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	const query = `
		SELECT id, email, password_hash, confirmed
		FROM credentials
		WHERE email = $1`
	var (
		id          string
		storedEmail string
		hash        string
		confirmed   bool
	)
	err := s.db.QueryRowContext(ctx, query, email).Scan(&id, &storedEmail, &hash, &confirmed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !confirmed {
		return nil, ErrEmailNotConfirmed
	}

	token, err := s.issueToken(id)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: User{ID: id, Email: storedEmail}}, nil
}

func (s *LocalService) GetUser(ctx context.Context, token string) (User, error) {
	subject, err := parseTokenSubject(token, s.secret)
	if err != nil {
		return User{}, ErrInvalidSession
	}

	const query = `SELECT id, email FROM credentials WHERE id = $1`
	var user User
	if err := s.db.QueryRowContext(ctx, query, subject).Scan(&user.ID, &user.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidSession
		}
		return User{}, err
	}
	return user, nil
}

// SignOut is a no-op for the stateless local backend: sessions expire with
// their tokens.
func (s *LocalService) SignOut(ctx context.Context, token string) error {
	return nil
}

func (s *LocalService) issueToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func parseTokenSubject(tokenString string, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("missing subject")
	}
	return claims.Subject, nil
}
