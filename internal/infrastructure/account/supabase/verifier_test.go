package supabase

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/lft-board/internal/usecase"
)

const testSecret = "super-secret-jwt-key"

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sign(t *testing.T, method jwtlib.SigningMethod, key any, claims Claims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() Claims {
	return Claims{
		Email: "player@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwtlib.ClaimStrings{DefaultAudience},
			IssuedAt:  jwtlib.NewNumericDate(fixedNow.Add(-time.Minute)),
			ExpiresAt: jwtlib.NewNumericDate(fixedNow.Add(time.Hour)),
		},
	}
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(testSecret, "")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	v.now = func() time.Time { return fixedNow }
	return v
}

func TestVerifier_AcceptsValidToken(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(t)
	principal, err := v.VerifyAccessToken(t.Context(), sign(t, jwtlib.SigningMethodHS256, []byte(testSecret), validClaims()))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != "user-1" || principal.Email != "player@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if principal.IsModerator {
		t.Fatalf("verifier must not grant moderator")
	}
}

func TestVerifier_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	expired := validClaims()
	expired.ExpiresAt = jwtlib.NewNumericDate(fixedNow.Add(-time.Hour))

	wrongAudience := validClaims()
	wrongAudience.Audience = jwtlib.ClaimStrings{"anon"}

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: " "},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: sign(t, jwtlib.SigningMethodHS256, []byte("other"), validClaims())},
		{name: "wrong algorithm", token: sign(t, jwtlib.SigningMethodHS512, []byte(testSecret), validClaims())},
		{name: "expired", token: sign(t, jwtlib.SigningMethodHS256, []byte(testSecret), expired)},
		{name: "wrong audience", token: sign(t, jwtlib.SigningMethodHS256, []byte(testSecret), wrongAudience)},
		{name: "missing subject", token: sign(t, jwtlib.SigningMethodHS256, []byte(testSecret), noSubject)},
		{name: "missing expiry", token: sign(t, jwtlib.SigningMethodHS256, []byte(testSecret), noExpiry)},
	}

	v := newTestVerifier(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.VerifyAccessToken(t.Context(), tc.token); !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewVerifier("  ", ""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
