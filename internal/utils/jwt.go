package utils

import (
	"errors"  // Error values
	"strconv" // Subject formatting
	"time"    // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenTTL is the fixed lifetime of an issued token
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any token that fails parsing or validation
var ErrInvalidToken = errors.New("invalid token")

// JWT Claims
type Claims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// GenerateJWT creates a JWT token for a given user ID
func GenerateJWT(userID uint, secret string) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10), // Subject is the user ID
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),  // Token expires in 7 days
			IssuedAt:  jwt.NewNumericDate(now),                // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != 0 {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, ErrInvalidToken
}

// VerifyJWT returns the user ID carried by a valid token, or false for any failure
func VerifyJWT(tokenStr, secret string) (uint, bool) {
	claims, err := ParseJWT(tokenStr, secret) // Structural, signature and expiry checks
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}
