package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dcastillo/user-service/internal/domain/entity"
)

func testUser() *entity.User {
	code := "472219"
	now := time.Now()
	return &entity.User{
		ID:             1,
		Name:           "Helmer Villarreal",
		Identification: "8888888889",
		Phone:          "3013555186",
		Email:          "helmer@example.com",
		PasswordHash:   "$2a$10$hash",
		Role:           entity.UserRoleStandard,
		Active:         false,
		ActivationCode: &code,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestUserUpdateDocumentKeepsActivationCode(t *testing.T) {
	user := testUser()

	update := userUpdateDocument(user)

	set := update["$set"].(bson.M)
	assert.Equal(t, user.ActivationCode, set["activation_code"])
	if unset, ok := update["$unset"].(bson.M); ok {
		assert.NotContains(t, unset, "activation_code")
	}
}

// An activated record has a nil activation code. The update must unset the
// stored field rather than omit it, otherwise the old code would keep
// matching replayed activation links.
func TestUserUpdateDocumentClearsActivationCode(t *testing.T) {
	user := testUser()
	user.Active = true
	user.ActivationCode = nil

	update := userUpdateDocument(user)

	set := update["$set"].(bson.M)
	assert.NotContains(t, set, "activation_code")
	assert.Equal(t, true, set["active"])

	unset, ok := update["$unset"].(bson.M)
	require.True(t, ok, "update must carry $unset for cleared fields")
	assert.Contains(t, unset, "activation_code")
}

func TestUserUpdateDocumentUnsetsClearedOptionalFields(t *testing.T) {
	user := testUser()
	address := "Calle 12 #3-45"
	birthdate := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	user.Address = &address
	user.Birthdate = &birthdate

	update := userUpdateDocument(user)
	set := update["$set"].(bson.M)
	assert.Equal(t, &address, set["address"])
	assert.Equal(t, &birthdate, set["birthdate"])

	user.Address = nil
	user.Birthdate = nil
	update = userUpdateDocument(user)

	set = update["$set"].(bson.M)
	assert.NotContains(t, set, "address")
	assert.NotContains(t, set, "birthdate")
	unset := update["$unset"].(bson.M)
	assert.Contains(t, unset, "address")
	assert.Contains(t, unset, "birthdate")
}

// The wire-level document, not just the in-memory map, must carry the unset:
// marshal the update the way the driver does and decode it back.
func TestUserUpdateDocumentMarshalsUnsetOnWire(t *testing.T) {
	user := testUser()
	user.Active = true
	user.ActivationCode = nil

	raw, err := bson.Marshal(userUpdateDocument(user))
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	unset, ok := decoded["$unset"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, unset, "activation_code")
	set := decoded["$set"].(bson.M)
	assert.NotContains(t, set, "activation_code")
}
