package contract

// IActivationCodeGenerator produces one-time numeric confirmation codes.
type IActivationCodeGenerator interface {
	// GenerateActivationCode returns a numeric string in [1, 1000000].
	GenerateActivationCode() (string, error)
}
