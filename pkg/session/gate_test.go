package session

import (
	"errors"
	"testing"
	"time"

	dbPatroller "github.com/vvaraldi/Infraction-Orford/pkg/db/patroller"
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

type fakeProvider struct {
	states     chan *identity.Principal
	signedOut  int
	signInErr  error
	signInUID  string
	signInMail string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{states: make(chan *identity.Principal, 8)}
}

func (p *fakeProvider) SignIn(email string, password string) (*identity.Principal, error) {
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	return &identity.Principal{UID: p.signInUID, Email: p.signInMail}, nil
}

func (p *fakeProvider) SignUp(email string, password string) (*identity.Principal, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProvider) SignOut() error {
	p.signedOut++
	return nil
}

func (p *fakeProvider) StateChanges() <-chan *identity.Principal {
	return p.states
}

func (p *fakeProvider) Secondary() (identity.Provider, func()) {
	return newFakeProvider(), func() {}
}

type fakeProfileStore struct {
	profiles map[string]*patrollerTypes.Patroller
	err      error
}

func (s *fakeProfileStore) GetPatrollerByID(id string) (*patrollerTypes.Patroller, error) {
	if s.err != nil {
		return nil, s.err
	}
	profile, ok := s.profiles[id]
	if !ok {
		return nil, dbPatroller.ErrNotFound
	}
	return profile, nil
}

func activeProfile(id string) *patrollerTypes.Patroller {
	return &patrollerTypes.Patroller{
		ID:              id,
		Name:            "Test Patroller",
		Role:            patrollerTypes.ROLE_PATROLLER,
		Status:          patrollerTypes.STATUS_ACTIVE,
		AllowInfraction: true,
	}
}

func waitForState(t *testing.T, gate *Gate, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if gate.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("gate never reached state %s, stuck at %s", want, gate.State())
}

func TestGateAuthorizesActiveProfile(t *testing.T) {
	provider := newFakeProvider()
	store := &fakeProfileStore{profiles: map[string]*patrollerTypes.Patroller{
		"uid-1": activeProfile("uid-1"),
	}}
	gate := NewGate(provider, store, nil)
	gate.Start()
	defer gate.Stop()

	provider.states <- &identity.Principal{UID: "uid-1", Email: "p@orford.ca"}
	waitForState(t, gate, StateAuthorized)

	select {
	case profile := <-gate.Authenticated():
		if profile.ID != "uid-1" {
			t.Errorf("expected broadcast for uid-1, got %q", profile.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an authenticated broadcast")
	}

	if gate.CurrentProfile() == nil || gate.CurrentProfile().ID != "uid-1" {
		t.Error("expected current profile to be set")
	}
	if provider.signedOut != 0 {
		t.Error("authorized session must not be signed out")
	}
}

func TestGateDeniesDisabledAccount(t *testing.T) {
	redirects := 0
	provider := newFakeProvider()
	disabled := activeProfile("uid-2")
	disabled.Status = patrollerTypes.STATUS_INACTIVE
	store := &fakeProfileStore{profiles: map[string]*patrollerTypes.Patroller{"uid-2": disabled}}
	gate := NewGate(provider, store, func() { redirects++ })
	gate.Start()
	defer gate.Stop()

	provider.states <- &identity.Principal{UID: "uid-2", Email: "p@orford.ca"}
	waitForState(t, gate, StateDenied)

	if provider.signedOut != 1 {
		t.Errorf("denied session must be signed out, got %d sign-outs", provider.signedOut)
	}
	if redirects != 1 {
		t.Errorf("expected one redirect to login, got %d", redirects)
	}
	denial := gate.LastDenial()
	if denial == nil || denial.Code != identity.CodeAccountDisabled {
		t.Errorf("expected account-disabled denial, got %v", denial)
	}
	if gate.CurrentProfile() != nil {
		t.Error("denied session must not retain a profile")
	}
}

func TestGateDeniesMissingProfile(t *testing.T) {
	provider := newFakeProvider()
	store := &fakeProfileStore{profiles: map[string]*patrollerTypes.Patroller{}}
	gate := NewGate(provider, store, nil)
	gate.Start()
	defer gate.Stop()

	provider.states <- &identity.Principal{UID: "ghost", Email: "g@orford.ca"}
	waitForState(t, gate, StateDenied)

	denial := gate.LastDenial()
	if denial == nil || denial.Code != identity.CodeProfileNotFound {
		t.Errorf("expected profile-not-found denial, got %v", denial)
	}
	if provider.signedOut != 1 {
		t.Error("denied session must be signed out")
	}
}

func TestGateDeniesOnFetchError(t *testing.T) {
	provider := newFakeProvider()
	store := &fakeProfileStore{err: errors.New("connection reset")}
	gate := NewGate(provider, store, nil)
	gate.Start()
	defer gate.Stop()

	provider.states <- &identity.Principal{UID: "uid-3", Email: "p@orford.ca"}
	waitForState(t, gate, StateDenied)

	denial := gate.LastDenial()
	if denial == nil || denial.Code != identity.CodeVerificationFailed {
		t.Errorf("expected generic verification failure, got %v", denial)
	}
}

func TestGateHandlesSignOut(t *testing.T) {
	redirects := 0
	provider := newFakeProvider()
	store := &fakeProfileStore{profiles: map[string]*patrollerTypes.Patroller{
		"uid-4": activeProfile("uid-4"),
	}}
	gate := NewGate(provider, store, func() { redirects++ })
	gate.Start()
	defer gate.Stop()

	provider.states <- &identity.Principal{UID: "uid-4", Email: "p@orford.ca"}
	waitForState(t, gate, StateAuthorized)

	provider.states <- nil
	waitForState(t, gate, StateUnauthenticated)

	if gate.CurrentProfile() != nil {
		t.Error("expected no profile after sign-out")
	}
	if redirects != 1 {
		t.Errorf("expected one redirect after sign-out, got %d", redirects)
	}
}

func TestLoginRevalidatesAccess(t *testing.T) {
	provider := newFakeProvider()
	provider.signInUID = "uid-5"
	provider.signInMail = "p@orford.ca"
	noAccess := activeProfile("uid-5")
	noAccess.AllowInfraction = false
	store := &fakeProfileStore{profiles: map[string]*patrollerTypes.Patroller{"uid-5": noAccess}}
	gate := NewGate(provider, store, nil)

	err := gate.Login("p@orford.ca", "hiver2025!")
	var authErr *identity.AuthError
	if !errors.As(err, &authErr) || authErr.Code != identity.CodeAccessDenied {
		t.Errorf("expected access-denied error, got %v", err)
	}
	if provider.signedOut != 1 {
		t.Error("failed login check must sign the session out")
	}
}

func TestLoginPassesForActiveProfile(t *testing.T) {
	provider := newFakeProvider()
	provider.signInUID = "uid-6"
	provider.signInMail = "p@orford.ca"
	store := &fakeProfileStore{profiles: map[string]*patrollerTypes.Patroller{
		"uid-6": activeProfile("uid-6"),
	}}
	gate := NewGate(provider, store, nil)

	if err := gate.Login("p@orford.ca", "hiver2025!"); err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if provider.signedOut != 0 {
		t.Error("successful login must not be signed out")
	}
}

func TestLogoutAlwaysRedirects(t *testing.T) {
	redirects := 0
	provider := newFakeProvider()
	gate := NewGate(provider, &fakeProfileStore{}, func() { redirects++ })

	gate.Logout()
	if provider.signedOut != 1 {
		t.Error("logout must sign the session out")
	}
	if redirects != 1 {
		t.Error("logout must redirect to the login surface")
	}
}

func TestAuthorizeProfile(t *testing.T) {
	inactive := activeProfile("a")
	inactive.Status = patrollerTypes.STATUS_INACTIVE
	noFlag := activeProfile("b")
	noFlag.AllowInfraction = false

	tests := []struct {
		name     string
		profile  *patrollerTypes.Patroller
		wantCode string
	}{
		{"nil profile", nil, identity.CodeProfileNotFound},
		{"inactive", inactive, identity.CodeAccountDisabled},
		{"no infraction access", noFlag, identity.CodeAccessDenied},
		{"active with access", activeProfile("c"), ""},
	}

	for _, test := range tests {
		err := AuthorizeProfile(test.profile)
		if test.wantCode == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", test.name, err)
			}
			continue
		}
		var authErr *identity.AuthError
		if !errors.As(err, &authErr) || authErr.Code != test.wantCode {
			t.Errorf("%s: expected code %s, got %v", test.name, test.wantCode, err)
		}
	}
}
