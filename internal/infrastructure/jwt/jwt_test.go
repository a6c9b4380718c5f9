package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/user-service/internal/domain/entity"
)

func testUser() *entity.User {
	code := "472219"
	return &entity.User{
		ID:             2,
		Name:           "Helena Vidal",
		Identification: "1051635340",
		Email:          "helena@example.com",
		Role:           entity.UserRoleAdmin,
		Active:         false,
		ActivationCode: &code,
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	mgr := NewJWTManager("test-secret", 8*time.Hour)

	token, err := mgr.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)
	assert.Equal(t, "Helena Vidal", claims.Name)
	assert.Equal(t, entity.UserRoleAdmin, claims.Role)
	assert.Equal(t, "1051635340", claims.Identification)
	assert.Equal(t, "helena@example.com", claims.Email)
	assert.Equal(t, "472219", claims.ActivationCode)
	assert.False(t, claims.Active)
}

func TestVerifyTokenExpired(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Second)

	token, err := mgr.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = mgr.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenWithinExpiryWindow(t *testing.T) {
	mgr := NewJWTManager("test-secret", 8*time.Hour)

	token, err := mgr.GenerateToken(testUser())
	require.NoError(t, err)

	// Still valid right after issuance; the window only closes at +8h.
	_, err = mgr.VerifyToken(token)
	assert.NoError(t, err)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	mgr := NewJWTManager("test-secret", 8*time.Hour)
	other := NewJWTManager("other-secret", 8*time.Hour)

	token, err := mgr.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", 8*time.Hour)

	_, err := mgr.VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateTokenWithoutActivationCode(t *testing.T) {
	mgr := NewJWTManager("test-secret", 8*time.Hour)
	user := testUser()
	user.ActivationCode = nil

	token, err := mgr.GenerateToken(user)
	require.NoError(t, err)

	claims, err := mgr.VerifyToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.ActivationCode)
}
