package utils

import (
	"errors"
	"fmt"
	"time"

	"brewpair/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom JWT claims used by the service.
type Claims struct {
	UserID string      `json:"userId"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for a user.
func GenerateToken(userID string, role entity.Role, secret string, ttl time.Duration) (string, error) {
	if _, err := entity.ParseRole(string(role)); err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature, expiry and role of a token.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user")
	}
	if _, err := entity.ParseRole(string(claims.Role)); err != nil {
		return nil, fmt.Errorf("invalid role claim: %w", err)
	}
	return claims, nil
}
