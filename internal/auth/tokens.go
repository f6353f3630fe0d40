package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("token is missing")
	ErrTokenExpired = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenService issues and validates session tokens. Tokens are stateless
// HMAC-SHA256 JWTs carrying the user ID and an absolute expiry; there is no
// refresh or revocation, expiry is the only invalidation path.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service signing with the given secret.
// A non-positive TTL falls back to one hour.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Issue produces a signed token embedding the user ID and expiry.
func (s *TokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the embedded user ID.
// The caller must still confirm the user exists; a token for a deleted user
// is treated the same as an invalid one.
func (s *TokenService) Validate(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrMissingToken
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// TTL reports the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
