package usecasecontract

import "time"

// IConfigProvider exposes the configuration values usecases depend on.
// It is constructed once at startup and injected; there is no ambient global.
type IConfigProvider interface {
	// GetAppBaseURL returns the externally reachable origin used to compose
	// activation links.
	GetAppBaseURL() string
	// GetTokenExpiry returns the lifetime of issued bearer tokens.
	GetTokenExpiry() time.Duration
	// GetSendActivationEmail reports whether registration dispatches the
	// activation email.
	GetSendActivationEmail() bool
}
