package usecase_test

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/user-service/internal/domain/entity"
	"github.com/dcastillo/user-service/internal/infrastructure/jwt"
	"github.com/dcastillo/user-service/internal/infrastructure/logger"
	passwordservice "github.com/dcastillo/user-service/internal/infrastructure/password_service"
	randomgenerator "github.com/dcastillo/user-service/internal/infrastructure/random_generator"
	"github.com/dcastillo/user-service/internal/infrastructure/validator"
	"github.com/dcastillo/user-service/internal/usecase"
	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

// stubUserRepo is an in-memory IUserRepository with the same duplicate and
// not-found semantics as the mongo implementation.
type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]entity.User)}
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Identification == user.Identification {
			return entity.ErrUserAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *stubUserRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (r *stubUserRepo) GetUserByIdentification(_ context.Context, identification string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Identification == identification {
			copied := u
			return &copied, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *stubUserRepo) GetAllUsers(_ context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) SearchUsersByName(_ context.Context, name string) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.User{}
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, entity.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Identification == user.Identification {
			return nil, entity.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = *user
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) UpdateUserPassword(_ context.Context, id int64, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	u.PasswordHash = hashedPassword
	r.users[id] = u
	return nil
}

func (r *stubUserRepo) DeleteUser(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubMailService records dispatched messages.
type stubMailService struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *stubMailService) SendEmail(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *stubMailService) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// stubConfig is a fixed IConfigProvider.
type stubConfig struct {
	baseURL   string
	expiry    time.Duration
	sendEmail bool
}

func (c *stubConfig) GetAppBaseURL() string { return c.baseURL }
func (c *stubConfig) GetTokenExpiry() time.Duration { return c.expiry }
func (c *stubConfig) GetSendActivationEmail() bool { return c.sendEmail }

type fixture struct {
	uc     *usecase.UserUsecase
	repo   *stubUserRepo
	mail   *stubMailService
	jwt    *jwt.JWTManager
	hasher *passwordservice.Hasher
}

func newFixture(t *testing.T, sendEmail bool) *fixture {
	t.Helper()
	repo := newStubUserRepo()
	mail := &stubMailService{}
	mgr := jwt.NewJWTManager("unit-test-secret", 8*time.Hour)
	hasher := passwordservice.NewHasher()
	cfg := &stubConfig{baseURL: "http://localhost:4000", expiry: 8 * time.Hour, sendEmail: sendEmail}

	uc := usecase.NewUserUsecase(
		repo,
		hasher,
		mgr,
		mail,
		randomgenerator.NewActivationCodeGenerator(),
		logger.NewStdLogger(),
		cfg,
		validator.NewValidator(),
	)
	return &fixture{uc: uc, repo: repo, mail: mail, jwt: mgr, hasher: hasher}
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func registerInput(identification string) usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Name:           "Helmer Villarreal",
		Password:       b64("123456789"),
		Identification: identification,
		Phone:          "3013555186",
		Email:          "helmer@example.com",
		Role:           "standard",
	}
}

func TestRegisterCreatesPendingUser(t *testing.T) {
	f := newFixture(t, true)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	stored, err := f.repo.GetUserByIdentification(context.Background(), "8888888889")
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.False(t, stored.FirstAccess)
	require.NotNil(t, stored.ActivationCode)
	assert.NotEqual(t, "123456789", stored.PasswordHash)
	assert.NoError(t, f.hasher.ComparePasswordHash("123456789", stored.PasswordHash))

	// Notification dispatch is detached from the response path.
	assert.Eventually(t, func() bool { return f.mail.sentCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestRegisterDuplicateIdentification(t *testing.T) {
	f := newFixture(t, false)

	first, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	input := registerInput("8888888889")
	input.Name = "Someone Else"
	_, err = f.uc.Register(context.Background(), input)
	assert.ErrorIs(t, err, entity.ErrUserAlreadyExists)

	// First record is unmodified.
	stored, err := f.repo.GetUserByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Helmer Villarreal", stored.Name)
}

func TestRegisterShortPassword(t *testing.T) {
	f := newFixture(t, false)

	input := registerInput("8888888889")
	input.Password = b64("short")
	_, err := f.uc.Register(context.Background(), input)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestRegisterMalformedBase64Password(t *testing.T) {
	f := newFixture(t, false)

	input := registerInput("8888888889")
	input.Password = "!!not-base64!!"
	_, err := f.uc.Register(context.Background(), input)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestRegisterInvalidRole(t *testing.T) {
	f := newFixture(t, false)

	input := registerInput("8888888889")
	input.Role = "superuser"
	_, err := f.uc.Register(context.Background(), input)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestRegisterMailFailureDoesNotFailRegistration(t *testing.T) {
	f := newFixture(t, true)
	f.mail.err = assert.AnError

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)
}

func TestAuthenticateUnknownIdentification(t *testing.T) {
	f := newFixture(t, false)

	_, _, err := f.uc.Authenticate(context.Background(), "0000000000", b64("123456789"))
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	// Correct credentials still fail while the registration is unconfirmed.
	_, _, err = f.uc.Authenticate(context.Background(), "8888888889", b64("123456789"))
	assert.ErrorIs(t, err, entity.ErrUserNotActivated)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	activateDirectly(t, f, user.ID)

	_, _, err = f.uc.Authenticate(context.Background(), "8888888889", b64("wrong-password"))
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestAuthenticateMalformedBase64(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	activateDirectly(t, f, user.ID)

	_, _, err = f.uc.Authenticate(context.Background(), "8888888889", "!!not-base64!!")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestAuthenticateSuccessIssuesTokenAndFlipsFirstAccess(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	activateDirectly(t, f, user.ID)

	authed, token, err := f.uc.Authenticate(context.Background(), "8888888889", b64("123456789"))
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, authed.ID)

	claims, err := f.jwt.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "8888888889", claims.Identification)
	assert.True(t, claims.Active)

	// firstAccess flips true exactly once, off the response path.
	assert.Eventually(t, func() bool {
		stored, err := f.repo.GetUserByID(context.Background(), user.ID)
		return err == nil && stored.FirstAccess
	}, time.Second, 10*time.Millisecond)
}

func TestActivationFlow(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	stored, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	token, err := f.jwt.GenerateToken(stored)
	require.NoError(t, err)

	activated, err := f.uc.Activate(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, activated.Active)
	assert.Nil(t, activated.ActivationCode)

	// Replaying the token fails the code match; state stays activated.
	_, err = f.uc.Activate(context.Background(), token)
	assert.ErrorIs(t, err, entity.ErrActivationCodeMismatch)
	stored, err = f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)

	// Once active, authentication succeeds.
	_, bearer, err := f.uc.Authenticate(context.Background(), "8888888889", b64("123456789"))
	require.NoError(t, err)
	assert.NotEmpty(t, bearer)
}

func TestActivateInvalidToken(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.uc.Activate(context.Background(), "garbage")
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestActivateCodeMismatch(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	// Token minted with a stale code must not activate the record.
	stale := *user
	wrongCode := "999999999"
	stale.ActivationCode = &wrongCode
	token, err := f.jwt.GenerateToken(&stale)
	require.NoError(t, err)

	_, err = f.uc.Activate(context.Background(), token)
	assert.ErrorIs(t, err, entity.ErrActivationCodeMismatch)

	stored, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	before, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)

	_, err = f.uc.ChangePassword(context.Background(), user.ID, b64("wrong-password"), b64("new-password"))
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	after, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestChangePasswordSuccess(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	_, err = f.uc.ChangePassword(context.Background(), user.ID, b64("123456789"), b64("new-password"))
	require.NoError(t, err)

	stored, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, f.hasher.ComparePasswordHash("new-password", stored.PasswordHash))
	assert.True(t, stored.FirstAccess)
}

func TestChangePasswordShortNewPassword(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	_, err = f.uc.ChangePassword(context.Background(), user.ID, b64("123456789"), b64("tiny"))
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpdateUserIgnoresPasswordField(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	before, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)

	updated, err := f.uc.UpdateUser(context.Background(), user.ID, map[string]interface{}{
		"name":     "New Name",
		"password": "sneaky-plaintext",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, before.PasswordHash, updated.PasswordHash)
}

func TestUpdateUserInvalidRole(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	_, err = f.uc.UpdateUser(context.Background(), user.ID, map[string]interface{}{"rol": "superuser"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestDeleteUserReturnsRecord(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)

	deleted, err := f.uc.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = f.uc.GetUserByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestSearchUsersByName(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.uc.Register(context.Background(), registerInput("8888888889"))
	require.NoError(t, err)
	other := registerInput("7777777777")
	other.Name = "Someone Else"
	other.Email = "someone@example.com"
	_, err = f.uc.Register(context.Background(), other)
	require.NoError(t, err)

	found, err := f.uc.SearchUsersByName(context.Background(), "villarreal")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Helmer Villarreal", found[0].Name)
}

// activateDirectly flips the stored record active, bypassing the token flow.
func activateDirectly(t *testing.T, f *fixture, id int64) {
	t.Helper()
	stored, err := f.repo.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	stored.Active = true
	stored.ActivationCode = nil
	_, err = f.repo.UpdateUser(context.Background(), stored)
	require.NoError(t, err)
}
