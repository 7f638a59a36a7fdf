package identity

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vvaraldi/Infraction-Orford/pkg/identity/pwhash"
	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

// CredentialStore is the persistence contract of the local provider,
// implemented by the patroller DB service.
type CredentialStore interface {
	CreateCredential(newCredential *patrollerTypes.Credential) (*patrollerTypes.Credential, error)
	GetCredentialByEmail(email string) (*patrollerTypes.Credential, error)
}

const stateChannelBuffer = 8

// LocalProvider is an email/password identity provider backed by the
// credentials collection. Each instance holds its own session state and
// state-change channel; Secondary instances share the store only.
type LocalProvider struct {
	store CredentialStore

	mu      sync.Mutex
	current *Principal
	states  chan *Principal
	closed  bool
}

func NewLocalProvider(store CredentialStore) *LocalProvider {
	return &LocalProvider{
		store:  store,
		states: make(chan *Principal, stateChannelBuffer),
	}
}

func (p *LocalProvider) SignIn(email string, password string) (*Principal, error) {
	email = SanitizeEmail(email)

	credential, err := p.store.GetCredentialByEmail(email)
	if err != nil {
		slog.Warn("sign-in attempt with unknown email", slog.String("email", BlurEmailAddress(email)))
		return nil, NewAuthError(CodeInvalidCredential, "invalid email or password")
	}

	match, err := pwhash.ComparePasswordWithHash(credential.PasswordHash, password)
	if err != nil || !match {
		slog.Warn("sign-in attempt with wrong password", slog.String("email", BlurEmailAddress(email)))
		return nil, NewAuthError(CodeInvalidCredential, "invalid email or password")
	}

	principal := &Principal{UID: credential.ID, Email: credential.Email}

	p.mu.Lock()
	p.current = principal
	p.mu.Unlock()
	p.publish(principal)

	return principal, nil
}

// SignUp registers a new credential with a freshly assigned principal id. It
// does not change the session state of this instance; provisioning flows use
// a Secondary instance anyway.
func (p *LocalProvider) SignUp(email string, password string) (*Principal, error) {
	email = SanitizeEmail(email)
	if !CheckEmailFormat(email) {
		return nil, NewAuthError(CodeInvalidCredential, "invalid email format")
	}
	if !CheckPasswordFormat(password) {
		return nil, NewAuthError(CodeInvalidCredential, "password does not fulfill the requirements")
	}

	if _, err := p.store.GetCredentialByEmail(email); err == nil {
		return nil, NewAuthError(CodeEmailInUse, "email already in use")
	}

	hash, err := pwhash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	credential, err := p.store.CreateCredential(&patrollerTypes.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// unique index on email catches the remaining race
		return nil, NewAuthError(CodeEmailInUse, "email already in use")
	}

	return &Principal{UID: credential.ID, Email: credential.Email}, nil
}

func (p *LocalProvider) SignOut() error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	p.publish(nil)
	return nil
}

func (p *LocalProvider) StateChanges() <-chan *Principal {
	return p.states
}

// Secondary returns an isolated provider over the same credential store. The
// dispose function signs the secondary instance out and closes its channel;
// callers must invoke it on every path.
func (p *LocalProvider) Secondary() (Provider, func()) {
	secondary := NewLocalProvider(p.store)
	dispose := func() {
		if err := secondary.SignOut(); err != nil {
			slog.Error("failed to sign out secondary provider instance", slog.String("error", err.Error()))
		}
		secondary.mu.Lock()
		if !secondary.closed {
			secondary.closed = true
			close(secondary.states)
		}
		secondary.mu.Unlock()
	}
	return secondary, dispose
}

func (p *LocalProvider) publish(principal *Principal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.states <- principal:
	default:
		slog.Warn("identity state-change channel full, dropping event")
	}
}
