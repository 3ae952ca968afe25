package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

var ErrInvalidToken = errors.New("invalid token")

type SessionClaims struct {
	jwt.RegisteredClaims
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

// TokenManager issues and validates the HS256 session tokens the API layer
// expects in the Authorization header.
type TokenManager struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenManager(signingKey []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{signingKey: signingKey, ttl: ttl}
}

func (m *TokenManager) GenerateSessionToken(employee *model.Employee, role string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   employee.ID.String(),
			Issuer:    "estate-management",
		},
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Role:       role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.signingKey)
}

func (m *TokenManager) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
