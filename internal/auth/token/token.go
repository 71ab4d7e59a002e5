// Package token issues and parses the stateless bearer tokens carried by the
// auth cookie. Tokens slide: every authenticated request re-issues one with a
// fresh expiry. There is no revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/meridiancrm/meridian/internal/config"
)

// Claims carries the authenticated sys user alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

var ErrInvalidToken = errors.New("invalid_token")

// Issuer signs and validates HS256 tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewIssuer(cfg config.Config) (*Issuer, error) {
	if cfg.AuthJWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	ttl := time.Duration(cfg.AuthTokenTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Issuer{
		secret: []byte(cfg.AuthJWTSecret),
		issuer: cfg.AppName,
		ttl:    ttl,
	}, nil
}

// TTL is the sliding lifetime applied to each issued token.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the given sys user.
func (i *Issuer) Issue(userID, username string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a token and returns its claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
