package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrUnauthorized       = errors.New("admin session required")
)

// RememberFor bounds tokens issued with remember set. Their session record
// lives in the durable store and has no TTL of its own.
const RememberFor = 30 * 24 * time.Hour

type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
	Secret       string
	SessionTTL   time.Duration
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionClaims is the signed payload of an admin token. The token id (jti)
// names the stored session record.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration

	scoped  *store.Accessor
	durable *store.Accessor
	Now     func() time.Time
}

// NewAuthService hashes cfg.Password when no PasswordHash is configured.
// scoped should expire its keys after cfg.SessionTTL.
func NewAuthService(cfg AuthConfig, scoped, durable store.Backend) (*AuthService, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}
	if cfg.Secret == "" {
		return nil, errors.New("session secret must not be empty")
	}

	return &AuthService{
		username:     cfg.Username,
		passwordHash: hash,
		secret:       []byte(cfg.Secret),
		ttl:          cfg.SessionTTL,
		scoped:       store.NewAccessor(scoped),
		durable:      store.NewAccessor(durable),
		Now:          time.Now,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)

	if username != s.username {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.Now()
	expiresAt := now.Add(s.ttl)
	target := s.scoped
	if req.Remember {
		expiresAt = now.Add(RememberFor)
		target = s.durable
	}

	claims := SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign session token: %w", err)
	}

	session := domain.AdminSession{Username: username, Timestamp: now.UnixMilli()}
	if err := target.Write(ctx, store.SessionKey(claims.ID), session); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, Username: username, ExpiresAt: expiresAt}, nil
}

// Authenticate accepts a token only while its session record exists in
// either scope.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.AdminSession, error) {
	claims, err := s.parse(token)
	if err != nil {
		return domain.AdminSession{}, err
	}

	key := store.SessionKey(claims.ID)
	for _, scope := range []*store.Accessor{s.scoped, s.durable} {
		session, found, err := store.Read(ctx, scope, key, domain.AdminSession{})
		if err != nil {
			return domain.AdminSession{}, err
		}
		if found && session.Username != "" {
			return session, nil
		}
	}
	return domain.AdminSession{}, ErrUnauthorized
}

// Logout removes the session from both scopes.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	key := store.SessionKey(claims.ID)
	if err := s.scoped.Remove(ctx, key); err != nil {
		return err
	}
	return s.durable.Remove(ctx, key)
}

func (s *AuthService) parse(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.Now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
