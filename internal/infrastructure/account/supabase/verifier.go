package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	"github.com/riskibarqy/lft-board/internal/usecase"
)

const DefaultAudience = "authenticated"

// Claims is the subset of a hosted-auth access token the board reads.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// Verifier checks HS256 access tokens locally with the project JWT secret.
type Verifier struct {
	secret   []byte
	audience string
	leeway   time.Duration
	now      func() time.Time
}

func NewVerifier(secret, audience string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	audience = strings.TrimSpace(audience)
	if audience == "" {
		audience = DefaultAudience
	}
	return &Verifier{
		secret:   []byte(secret),
		audience: audience,
		leeway:   30 * time.Second,
		now:      time.Now,
	}, nil
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithAudience(v.audience),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithLeeway(v.leeway),
		jwtlib.WithTimeFunc(v.now),
	)

	var claims Claims
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwtlib.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return user.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		}
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: subject, Email: claims.Email}, nil
}
