package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

func TestSessionService_IssueAndVerify(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)

	token, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	email, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %q", email)
	}
}

func TestSessionService_DefaultTTL(t *testing.T) {
	if got := NewSessionService("secret", 0).TTL(); got != DefaultSessionTTL {
		t.Errorf("expected %v, got %v", DefaultSessionTTL, got)
	}
}

func TestSessionService_IssueRequiresEmail(t *testing.T) {
	if _, err := NewSessionService("secret", time.Hour).Issue(""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSessionService_VerifyRejects(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)

	expired := NewSessionService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Issue("alice@example.com")

	otherKey, _ := NewSessionService("other", time.Hour).Issue("alice@example.com")

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "alice@example.com"}).
		SignedString([]byte("secret"))

	wrongAlg, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	noEmail, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	cases := map[string]string{
		"garbage":         "not-a-token",
		"expired":         expiredToken,
		"wrong key":       otherKey,
		"missing exp":     noExp,
		"wrong algorithm": wrongAlg,
		"missing email":   noEmail,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}
