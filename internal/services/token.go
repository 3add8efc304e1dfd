package services

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies the bearer tokens used by the API.
// Tokens carry the user id as the subject claim, signed with HS256.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService() *TokenService {
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    72 * time.Hour,
	}
}

// Sign creates a token for the given user id
func (s *TokenService) Sign(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a token and returns the user id it was issued for.
// Anything malformed, expired or signed with the wrong key is ErrInvalidToken.
func (s *TokenService) Parse(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
