// Package identity is the identity collaborator of the infraction system:
// email/password sign-in, sign-up, sign-out and a persistent state-change
// subscription. The concrete provider is replaceable; the rest of the system
// only sees the Provider interface.
package identity

import "fmt"

// Principal is an authenticated identity as reported by the provider.
type Principal struct {
	UID   string
	Email string
}

// AuthError codes, each mapped to a distinct user-facing message.
const (
	CodeInvalidCredential  = "invalid-credential"
	CodeAccountDisabled    = "account-disabled"
	CodeAccessDenied       = "access-denied"
	CodeProfileNotFound    = "profile-not-found"
	CodeEmailInUse         = "email-in-use"
	CodeVerificationFailed = "verification-failed"
)

type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAuthError(code string, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}

// Provider is the identity collaborator contract.
//
// StateChanges is a persistent subscription, not a one-shot call: it emits
// the principal on every successful sign-in and nil on sign-out, for the
// lifetime of the provider instance.
//
// Secondary returns an isolated provider instance over the same credential
// backend with its own session state, so provisioning a new account never
// touches the caller's active session. The returned dispose function must be
// called unconditionally when done.
type Provider interface {
	SignIn(email string, password string) (*Principal, error)
	SignUp(email string, password string) (*Principal, error)
	SignOut() error
	StateChanges() <-chan *Principal
	Secondary() (Provider, func())
}
