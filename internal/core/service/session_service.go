package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

// DefaultSessionTTL matches the long-lived cookie the web client expects.
const DefaultSessionTTL = 365 * 24 * time.Hour

// SessionService signs and verifies HS256 session tokens carrying an email.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *SessionService) TTL() time.Duration { return s.ttl }

// Issue returns a signed token for email.
func (s *SessionService) Issue(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("issue session: %w", domain.ErrUnauthorized)
	}
	now := s.now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry and returns the embedded email.
func (s *SessionService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return "", errors.Join(domain.ErrUnauthorized, err)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.ErrUnauthorized
	}
	return email, nil
}
