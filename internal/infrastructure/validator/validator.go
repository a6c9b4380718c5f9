package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dcastillo/user-service/internal/domain/entity"
	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

// minPasswordLength applies to the decoded plaintext, not the wire encoding.
const minPasswordLength = 6

// AppValidator implements the usecase IValidator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase IValidator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	return &AppValidator{validate: v}
}

var _ usecasecontract.IValidator = (*AppValidator)(nil)

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	if err := av.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("add an email valid")
	}
	return nil
}

// ValidatePasswordLength checks the minimum length of the decoded password.
func (av *AppValidator) ValidatePasswordLength(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("the password cannot be empty and must contain at least %d characters", minPasswordLength)
	}
	return nil
}

// ValidateRole checks that the role is one of the enumerated user types.
func (av *AppValidator) ValidateRole(role string) error {
	if !entity.UserRole(role).IsValid() {
		return fmt.Errorf("the type user %q is not valid", role)
	}
	return nil
}
