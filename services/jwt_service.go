package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hostel-complaint-server/config"
	"hostel-complaint-server/types"
)

// JWTService validates tokens minted by the upstream sign-in service and can
// mint them itself for deployments where both run on the same secret.
type JWTService struct{}

// NewJWTService creates a new JWT service
func NewJWTService() *JWTService {
	return &JWTService{}
}

// GenerateToken signs a token carrying the identity address and role claim.
func (js *JWTService) GenerateToken(address, role string) (string, error) {
	claims := &types.Claims{
		Address: address,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(config.AppConfig.JWT.ExpiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWT.Secret))
}

// ValidateToken verifies a token's signature and expiry and returns its
// claims.
func (js *JWTService) ValidateToken(tokenString string) (*types.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*types.Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Address == "" {
		return nil, errors.New("token carries no identity address")
	}

	return claims, nil
}
