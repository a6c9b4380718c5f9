package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dcastillo/user-service/internal/domain/entity"
	"github.com/dcastillo/user-service/internal/usecase"
)

// JWTManager issues and verifies signed, time-limited identity tokens.
// It is stateless; nothing is persisted and revocation is not supported.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a manager signing with the given server secret.
// Tokens expire after the given window from issuance.
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), expiry: expiry}
}

// check that JWTManager satisfies the usecase contract at compile time
var _ usecase.JWTService = (*JWTManager)(nil)

// GenerateToken signs the user's claims, embedding the activation code so
// the activation flow can re-validate it against stored state.
func (m *JWTManager) GenerateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &entity.Claims{
		UserID:         user.ID,
		Name:           user.Name,
		Role:           user.Role,
		Identification: user.Identification,
		Active:         user.Active,
		Email:          user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	if user.ActivationCode != nil {
		claims.ActivationCode = *user.ActivationCode
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature validity and expiry and returns the claims.
func (m *JWTManager) VerifyToken(tokenStr string) (*entity.Claims, error) {
	claims := &entity.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
