package utilities

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Secret keys. Token issuance lives in the identity service; this process
// only needs the secrets to validate what it receives.
var (
	secretMu      sync.RWMutex
	accessSecret  = []byte("change-me-access-secret")
	refreshSecret = []byte("change-me-refresh-secret")
)

// Token expiration times
const (
	AccessTokenExpiry  = time.Minute * 15
	RefreshTokenExpiry = time.Hour * 24 * 7
)

// Claims struct
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ConfigureSecrets replaces the signing secrets. Empty values keep the current ones.
func ConfigureSecrets(access, refresh string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	if access != "" {
		accessSecret = []byte(access)
	}
	if refresh != "" {
		refreshSecret = []byte(refresh)
	}
}

func secretFor(isRefresh bool) []byte {
	secretMu.RLock()
	defer secretMu.RUnlock()
	if isRefresh {
		return refreshSecret
	}
	return accessSecret
}

// GenerateAccessToken signs an access token for the given user.
func GenerateAccessToken(userID uint, email string) (string, error) {
	return generateToken(userID, email, secretFor(false), AccessTokenExpiry)
}

// ValidateToken verifies the token and extracts claims
func ValidateToken(tokenStr string, isRefresh bool) (*Claims, error) {
	secret := secretFor(isRefresh)

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})

	if err != nil {
		return nil, errors.New("invalid or malformed token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token has expired")
	}

	return claims, nil
}

// Helper function to generate JWT token
func generateToken(userID uint, email string, secret []byte, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
