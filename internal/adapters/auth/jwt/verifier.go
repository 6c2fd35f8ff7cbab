// Package jwt verifica bearer tokens HS256 para la API REST.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/weijenchou/dogdietlinebot/internal/ports/auth"
)

var ErrNotConfigured = errors.New("jwt verifier not configured")

type Config struct {
	Secret string

	Issuer string        // opcional; si viene, se exige
	Leeway time.Duration // tolerancia de reloj
}

// Verifier implementa auth.AuthVerifier. El subject del token es el owner.
type Verifier struct {
	secret []byte
	opts   []gojwt.ParserOption
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithLeeway(cfg.Leeway),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, gojwt.WithIssuer(iss))
	}
	return &Verifier{secret: []byte(secret), opts: opts}, nil
}

type ownerClaims struct {
	Name string `json:"name,omitempty"`
	gojwt.RegisteredClaims
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	var claims ownerClaims
	_, err := gojwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*gojwt.Token) (any, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", auth.ErrInvalidToken)
	}
	return auth.Claims{OwnerID: sub, Name: claims.Name}, nil
}

// Issue firma un token para owner (CLI y tests).
func (v *Verifier) Issue(owner string, ttl time.Duration, now time.Time) (string, error) {
	claims := ownerClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   owner,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(v.secret)
}
