package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAdmin is returned for a well-signed token that does not carry the admin claim
var ErrNotAdmin = errors.New("token does not grant admin access")

// AdminClaims custom claims for the admin session token
type AdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// JWTUtil issues and validates admin tokens with a process-wide secret
type JWTUtil struct {
	secretKey  []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTUtil creates a new JWTUtil
func NewJWTUtil(secretKey string, expiration time.Duration) *JWTUtil {
	return &JWTUtil{secretKey: []byte(secretKey), expiration: expiration, now: time.Now}
}

// GenerateAdminToken signs a new {admin: true} token
func (ju *JWTUtil) GenerateAdminToken() (string, error) {
	issuedAt := ju.now()
	claims := &AdminClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ju.expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(ju.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a token against the configured secret
func (ju *JWTUtil) ValidateToken(tokenString string) (*AdminClaims, error) {
	return ParseAdminToken(ju.secretKey, tokenString)
}

// ParseAdminToken verifies signature, algorithm, expiry and the admin claim.
// Callers should treat every error the same way.
func ParseAdminToken(secret []byte, tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.Admin {
		return nil, ErrNotAdmin
	}
	return claims, nil
}
