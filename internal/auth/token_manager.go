package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenManager creates a new JWT token manager.
func NewJWTTokenManager(secret string) TokenManager {
	return &jwtTokenManager{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

func (j *jwtTokenManager) GenerateToken(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(j.ttl).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *jwtTokenManager) ValidateToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("auth: invalid token")
	}
	raw, ok := claims["user_id"].(float64) // los números JSON decodifican a float64
	if !ok {
		return 0, errors.New("auth: token without user_id")
	}
	return int(raw), nil
}
