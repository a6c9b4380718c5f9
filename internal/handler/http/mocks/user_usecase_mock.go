package mocks

import (
	"context"

	"github.com/dcastillo/user-service/internal/domain/entity"
	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the IUserUseCase interface
type MockUserUsecase struct {
	// Control mock behavior: each Fail* field holds the error the
	// corresponding operation returns.
	FailRegister       error
	FailAuthenticate   error
	FailActivate       error
	FailChangePassword error
	FailGetAll         error
	FailGetByID        error
	FailSearchByName   error
	FailUpdateUser     error
	FailDeleteUser     error

	// Return values
	MockUser  entity.User
	MockToken string

	// Recorded inputs
	LastRegisterInput usecasecontract.RegisterInput
	LastUpdates       map[string]interface{}
}

// Ensure MockUserUsecase implements the interface consumed by the handlers
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:             1,
			Name:           "Test User",
			Identification: "1051635340",
			Phone:          "3013555186",
			Email:          "test@example.com",
			Role:           entity.UserRoleStandard,
		},
		MockToken: "mock_bearer_token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, input usecasecontract.RegisterInput) (*entity.User, error) {
	if m.FailRegister != nil {
		return nil, m.FailRegister
	}
	m.LastRegisterInput = input
	return &m.MockUser, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, identification, password string) (*entity.User, string, error) {
	if m.FailAuthenticate != nil {
		return nil, "", m.FailAuthenticate
	}
	return &m.MockUser, m.MockToken, nil
}

func (m *MockUserUsecase) Activate(ctx context.Context, token string) (*entity.User, error) {
	if m.FailActivate != nil {
		return nil, m.FailActivate
	}
	user := m.MockUser
	user.Active = true
	return &user, nil
}

func (m *MockUserUsecase) ChangePassword(ctx context.Context, userID int64, password, newPassword string) (*entity.User, error) {
	if m.FailChangePassword != nil {
		return nil, m.FailChangePassword
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	if m.FailGetAll != nil {
		return nil, m.FailGetAll
	}
	return []entity.User{m.MockUser}, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID int64) (*entity.User, error) {
	if m.FailGetByID != nil {
		return nil, m.FailGetByID
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) SearchUsersByName(ctx context.Context, name string) ([]entity.User, error) {
	if m.FailSearchByName != nil {
		return nil, m.FailSearchByName
	}
	return []entity.User{m.MockUser}, nil
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) (*entity.User, error) {
	if m.FailUpdateUser != nil {
		return nil, m.FailUpdateUser
	}
	m.LastUpdates = updates
	return &m.MockUser, nil
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, userID int64) (*entity.User, error) {
	if m.FailDeleteUser != nil {
		return nil, m.FailDeleteUser
	}
	return &m.MockUser, nil
}
