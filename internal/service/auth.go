package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mathsolver/internal/config"
	"mathsolver/internal/domain"
)

// Claims are the JWT claims carried by operator tokens.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// TokenService mints and validates operator tokens for the mutating API
// endpoints. There is a single operator identity, so tokens carry only a
// display name.
type TokenService struct {
	cfg config.APIConfig
}

// NewTokenService creates a TokenService.
func NewTokenService(cfg config.APIConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue signs a new token for the named operator.
func (s *TokenService) Issue(name string) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.cfg.TokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
		},
		Name: name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiry, nil
}

// Validate parses and verifies a token string.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if iss, _ := claims.GetIssuer(); iss != s.cfg.Issuer {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
