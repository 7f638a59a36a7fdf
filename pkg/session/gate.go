// Package session implements the session gate: it resolves the current
// principal through the identity provider's state-change subscription, loads
// the profile record, enforces the access policy and notifies downstream
// consumers once per successful authorization.
package session

import (
	"errors"
	"log/slog"
	"sync"

	dbPatroller "github.com/vvaraldi/Infraction-Orford/pkg/db/patroller"
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateAuthorized
	StateDenied
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateAuthorized:
		return "authorized"
	case StateDenied:
		return "denied"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ProfileStore loads profile records keyed by principal id, implemented by
// the patroller DB service.
type ProfileStore interface {
	GetPatrollerByID(id string) (*patrollerTypes.Patroller, error)
}

const broadcastBuffer = 4

// Gate is the session state machine:
//
//	Unresolved -> Resolving -> {Authorized, Denied, Unauthenticated}
//
// Start subscribes to the provider's state changes; every non-nil principal
// triggers a profile fetch and policy evaluation, every nil principal leads
// to Unauthenticated and the login redirect. A denied session is always
// signed out before the denial is surfaced, so it can never retain a live
// credential.
type Gate struct {
	provider        identity.Provider
	profiles        ProfileStore
	redirectToLogin func()

	mu         sync.Mutex
	state      State
	profile    *patrollerTypes.Patroller
	lastDenial *identity.AuthError

	broadcasts chan *patrollerTypes.Patroller
	done       chan struct{}
	startOnce  sync.Once
}

func NewGate(provider identity.Provider, profiles ProfileStore, redirectToLogin func()) *Gate {
	if redirectToLogin == nil {
		redirectToLogin = func() {}
	}
	return &Gate{
		provider:        provider,
		profiles:        profiles,
		redirectToLogin: redirectToLogin,
		state:           StateUnresolved,
		broadcasts:      make(chan *patrollerTypes.Patroller, broadcastBuffer),
		done:            make(chan struct{}),
	}
}

// Start begins consuming the provider's persistent state-change
// subscription. It may be called once; later calls are no-ops.
func (g *Gate) Start() {
	g.startOnce.Do(func() {
		g.mu.Lock()
		g.state = StateResolving
		g.mu.Unlock()
		go g.run()
	})
}

func (g *Gate) Stop() {
	close(g.done)
}

func (g *Gate) run() {
	states := g.provider.StateChanges()
	for {
		select {
		case principal, ok := <-states:
			if !ok {
				return
			}
			g.handleStateChange(principal)
		case <-g.done:
			return
		}
	}
}

func (g *Gate) handleStateChange(principal *identity.Principal) {
	if principal == nil {
		g.mu.Lock()
		alreadyOut := g.state == StateUnauthenticated
		g.state = StateUnauthenticated
		g.profile = nil
		g.mu.Unlock()
		if !alreadyOut {
			g.redirectToLogin()
		}
		return
	}

	profile, err := g.profiles.GetPatrollerByID(principal.UID)
	if err != nil {
		if isNotFound(err) {
			g.deny(identity.NewAuthError(identity.CodeProfileNotFound, "profile not found, contact the administrator"))
			return
		}
		slog.Error("session gate could not load profile", slog.String("uid", principal.UID), slog.String("error", err.Error()))
		g.deny(identity.NewAuthError(identity.CodeVerificationFailed, "verification failed, try again later"))
		return
	}

	if err := AuthorizeProfile(profile); err != nil {
		var authErr *identity.AuthError
		if !errors.As(err, &authErr) {
			authErr = identity.NewAuthError(identity.CodeVerificationFailed, "verification failed, try again later")
		}
		g.deny(authErr)
		return
	}

	g.mu.Lock()
	g.state = StateAuthorized
	g.profile = profile
	g.lastDenial = nil
	g.mu.Unlock()

	// one broadcast per successful authorization
	select {
	case g.broadcasts <- profile:
	default:
		slog.Warn("authenticated broadcast channel full, dropping event")
	}
}

func (g *Gate) deny(authErr *identity.AuthError) {
	// sign out first so a denied session never keeps a live credential
	if err := g.provider.SignOut(); err != nil {
		slog.Error("failed to sign out denied session", slog.String("error", err.Error()))
	}
	g.mu.Lock()
	g.state = StateDenied
	g.profile = nil
	g.lastDenial = authErr
	g.mu.Unlock()
	g.redirectToLogin()
}

// Authenticated is the broadcast consumed by downstream components. It
// carries the full profile record, fired at most once per successful
// authorization and re-fired when the principal re-authenticates.
func (g *Gate) Authenticated() <-chan *patrollerTypes.Patroller {
	return g.broadcasts
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// CurrentProfile returns the authorized profile or nil.
func (g *Gate) CurrentProfile() *patrollerTypes.Patroller {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.profile
}

func (g *Gate) IsAdmin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.profile != nil && g.profile.IsAdmin()
}

// LastDenial returns the classified error of the most recent denial, or nil.
func (g *Gate) LastDenial() *identity.AuthError {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastDenial
}

// Login signs in through the provider, then re-validates status and access
// flags against the profile record. On any failed check the session is
// signed out before the classified failure is returned.
func (g *Gate) Login(email string, password string) error {
	principal, err := g.provider.SignIn(email, password)
	if err != nil {
		return err
	}

	profile, err := g.profiles.GetPatrollerByID(principal.UID)
	if err != nil {
		if signOutErr := g.provider.SignOut(); signOutErr != nil {
			slog.Error("failed to sign out after login check", slog.String("error", signOutErr.Error()))
		}
		if isNotFound(err) {
			return identity.NewAuthError(identity.CodeProfileNotFound, "profile not found, contact the administrator")
		}
		return identity.NewAuthError(identity.CodeVerificationFailed, "verification failed, try again later")
	}

	if err := AuthorizeProfile(profile); err != nil {
		if signOutErr := g.provider.SignOut(); signOutErr != nil {
			slog.Error("failed to sign out after login check", slog.String("error", signOutErr.Error()))
		}
		return err
	}
	return nil
}

// Logout signs out and always redirects to the login surface afterwards;
// sign-out failures are logged, never surfaced as blocking.
func (g *Gate) Logout() {
	if err := g.provider.SignOut(); err != nil {
		slog.Error("sign-out failed", slog.String("error", err.Error()))
	}
	g.redirectToLogin()
}

func isNotFound(err error) bool {
	return errors.Is(err, dbPatroller.ErrNotFound)
}
