package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/coursekart/coursekart-api/internal/kv"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs short-lived HS256 access tokens and keeps opaque refresh
// tokens in the kv store so they can be rotated and revoked.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      kv.Store
	prefix     string
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration, store kv.Store) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
		prefix:     "refresh",
	}
}

func (t *TokenIssuer) refreshKey(token string) string { return t.prefix + ":" + token }

func (t *TokenIssuer) Issue(ctx context.Context, userID, role string) (*TokenPair, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	if err := t.store.Set(ctx, t.refreshKey(refresh), []byte(userID), t.refreshTTL); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (t *TokenIssuer) VerifyAccess(tokenString string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Refresh rotates: the presented token is deleted before a new pair is
// issued, so each refresh token is single-use.
func (t *TokenIssuer) Refresh(ctx context.Context, refreshToken, role string) (*TokenPair, error) {
	raw, err := t.store.Get(ctx, t.refreshKey(refreshToken))
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID := string(raw)
	if err := t.store.Del(ctx, t.refreshKey(refreshToken)); err != nil {
		return nil, err
	}
	return t.Issue(ctx, userID, role)
}

// UserIDFor looks up the user behind a refresh token without consuming it.
func (t *TokenIssuer) UserIDFor(ctx context.Context, refreshToken string) (string, error) {
	raw, err := t.store.Get(ctx, t.refreshKey(refreshToken))
	if err != nil {
		return "", ErrInvalidToken
	}
	return string(raw), nil
}

func (t *TokenIssuer) Revoke(ctx context.Context, refreshToken string) error {
	return t.store.Del(ctx, t.refreshKey(refreshToken))
}
