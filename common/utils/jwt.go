package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var jwtSecret []byte

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// Valid implements the jwt.Claims interface
func (c Claims) Valid() error {
	if c.UserID == "" {
		return ErrInvalidToken
	}
	return c.StandardClaims.Valid()
}

// SetJWTSecret sets the secret used to verify tokens issued by the auth provider.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// GenerateJWTTokenWithClaims signs claims with the configured secret. The api
// never issues tokens itself; tests and local tooling use this.
func GenerateJWTTokenWithClaims(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.StandardClaims = jwt.StandardClaims{
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJwTTokenWithClaims validates a JWT token. It returns the Claims object
// contained in the token, or an error if the token is invalid.
func ValidateJwTTokenWithClaims(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		if len(jwtSecret) == 0 {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// GetBearerToken extracts the token from an "Authorization: Bearer <token>" header value
func GetBearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
