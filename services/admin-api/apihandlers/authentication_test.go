package apihandlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	patrollerDB "github.com/vvaraldi/Infraction-Orford/pkg/db/patroller"
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

const testSignKey = "test-sign-key"

type stubProvider struct {
	principal *identity.Principal
	signedOut int
}

func (p *stubProvider) SignIn(email string, password string) (*identity.Principal, error) {
	return p.principal, nil
}

func (p *stubProvider) SignUp(email string, password string) (*identity.Principal, error) {
	return nil, errors.New("not supported")
}

func (p *stubProvider) SignOut() error {
	p.signedOut++
	return nil
}

func (p *stubProvider) StateChanges() <-chan *identity.Principal {
	return nil
}

func (p *stubProvider) Secondary() (identity.Provider, func()) {
	return p, func() {}
}

type stubProfileStore struct {
	profile *patrollerTypes.Patroller
	err     error
}

func (s stubProfileStore) GetPatrollerByID(id string) (*patrollerTypes.Patroller, error) {
	return s.profile, s.err
}

func performLogin(router *gin.Engine) *httptest.ResponseRecorder {
	body := `{"email": "chef@orford.local", "password": "Sommet-2026"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAdminLoginClassifiesProfileFetchFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name           string
		fetchErr       error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing profile",
			fetchErr:       patrollerDB.ErrNotFound,
			expectedStatus: http.StatusForbidden,
			expectedBody:   "profile not found",
		},
		{
			name:           "backend failure",
			fetchErr:       errors.New("server selection timeout"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "verification failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{principal: &identity.Principal{UID: "admin-1", Email: "chef@orford.local"}}
			h := &HttpEndpoints{
				tokenSignKey:     testSignKey,
				tokenExpiresIn:   time.Minute,
				patrollerDBConn:  stubProfileStore{err: tc.fetchErr},
				identityProvider: provider,
			}
			router := gin.New()
			h.AddAdminAuthAPI(router.Group("/v1"))

			recorder := performLogin(router)
			if recorder.Code != tc.expectedStatus {
				t.Errorf("expected %d, got %d: %s", tc.expectedStatus, recorder.Code, recorder.Body.String())
			}
			if !strings.Contains(recorder.Body.String(), tc.expectedBody) {
				t.Errorf("expected %q in the response, got %s", tc.expectedBody, recorder.Body.String())
			}
			if provider.signedOut != 1 {
				t.Errorf("a failed profile check must sign the session out, got %d sign-outs", provider.signedOut)
			}
		})
	}
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := &stubProvider{principal: &identity.Principal{UID: "patrol-7", Email: "chef@orford.local"}}
	h := &HttpEndpoints{
		tokenSignKey:   testSignKey,
		tokenExpiresIn: time.Minute,
		patrollerDBConn: stubProfileStore{profile: &patrollerTypes.Patroller{
			ID:              "patrol-7",
			Name:            "Julie Gagnon",
			Status:          patrollerTypes.STATUS_ACTIVE,
			Role:            patrollerTypes.ROLE_PATROLLER,
			AllowInfraction: true,
		}},
		identityProvider: provider,
	}
	router := gin.New()
	h.AddAdminAuthAPI(router.Group("/v1"))

	recorder := performLogin(router)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if provider.signedOut != 1 {
		t.Errorf("a rejected admin login must sign the session out, got %d sign-outs", provider.signedOut)
	}
}
