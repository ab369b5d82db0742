package jwtverifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"refugio-adopciones/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretMissing = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Verifier valida access tokens HS256 localmente con el secreto compartido
// del auth server (mismo formato que emite GoTrue).
type Verifier struct {
	secret   []byte
	audience string
}

type Option func(*Verifier)

// WithAudience exige el claim aud (GoTrue usa "authenticated").
func WithAudience(aud string) Option {
	return func(v *Verifier) { v.audience = strings.TrimSpace(aud) }
}

func New(secret string, opts ...Option) *Verifier {
	v := &Verifier{secret: []byte(secret)}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type tokenClaims struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if len(v.secret) == 0 {
		return auth.Claims{}, ErrSecretMissing
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(tc.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	// app_metadata.role es el rol del refugio; "role" a secas solo si es uno nuestro
	// (GoTrue pone "authenticated" ahí).
	role := auth.Role(strings.TrimSpace(tc.AppMetadata.Role))
	if role == "" {
		switch r := auth.Role(strings.TrimSpace(tc.Role)); r {
		case auth.RoleAdmin, auth.RoleMember:
			role = r
		}
	}

	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(tc.Email),
		Role:   role,
	}, nil
}
