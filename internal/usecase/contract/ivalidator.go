package usecasecontract

// IValidator validates registration input beyond structural binding.
type IValidator interface {
	ValidateEmail(email string) error
	// ValidatePasswordLength checks the decoded plaintext length.
	ValidatePasswordLength(password string) error
	ValidateRole(role string) error
}
