package entity

import "errors"

// Sentinel errors shared between usecases and handlers. Handlers map these
// to HTTP status codes; usecases wrap them with context via fmt.Errorf and %w.
var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("error in data input")
	// ErrUserAlreadyExists signals a duplicate identification at registration.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound signals that no record matched the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials signals a failed password verification.
	ErrInvalidCredentials = errors.New("identification or password incorrect")
	// ErrUserNotActivated signals authentication against a pending account.
	ErrUserNotActivated = errors.New("the user has not confirmed the registration")
	// ErrInvalidToken signals a token that failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrActivationCodeMismatch signals that the code embedded in an
	// activation token does not match the stored record.
	ErrActivationCodeMismatch = errors.New("activation code does not match")
	// ErrForbidden signals a role check failure on an admin-only operation.
	ErrForbidden = errors.New("insufficient privileges")
)
