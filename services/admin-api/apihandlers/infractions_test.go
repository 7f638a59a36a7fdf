package apihandlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vvaraldi/Infraction-Orford/pkg/console"
	infractionDB "github.com/vvaraldi/Infraction-Orford/pkg/db/infraction"
	jwthandling "github.com/vvaraldi/Infraction-Orford/pkg/jwt-handling"
	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

type fakeReportStore struct {
	reports map[string]*infractionTypes.Infraction
}

func (s *fakeReportStore) GetInfractions(includeArchived bool) ([]infractionTypes.Infraction, error) {
	infractions := []infractionTypes.Infraction{}
	for _, stored := range s.reports {
		if !includeArchived && stored.Archived {
			continue
		}
		infractions = append(infractions, *stored)
	}
	return infractions, nil
}

func (s *fakeReportStore) GetInfractionByID(id string) (infractionTypes.Infraction, error) {
	stored, ok := s.reports[id]
	if !ok {
		return infractionTypes.Infraction{}, infractionDB.ErrNotFound
	}
	return *stored, nil
}

func (s *fakeReportStore) SaveAdminComment(id string, comments string) error {
	stored, ok := s.reports[id]
	if !ok {
		return infractionDB.ErrNotFound
	}
	stored.AdminComments = comments
	return nil
}

func (s *fakeReportStore) SetArchiveState(id string, archived bool) error {
	stored, ok := s.reports[id]
	if !ok {
		return infractionDB.ErrNotFound
	}
	stored.Archived = archived
	return nil
}

func infractionsTestRouter(t *testing.T, store *fakeReportStore) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := &HttpEndpoints{
		tokenSignKey:   testSignKey,
		tokenExpiresIn: time.Minute,
		console:        console.NewConsole(store, nil, nil),
	}
	router := gin.New()
	h.AddInfractionManagementAPI(router.Group("/v1"))

	token, err := jwthandling.GenerateNewPatrollerToken(time.Minute, "admin-1", "Marc Dubois", true, testSignKey)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return router, token
}

func TestInfractionDetailCarriesFormattedLocation(t *testing.T) {
	id := primitive.NewObjectID()
	store := &fakeReportStore{reports: map[string]*infractionTypes.Infraction{
		id.Hex(): {
			ID:               id,
			PatrolID:         "patrol-7",
			PatrolName:       "Julie Gagnon",
			OffenceTimestamp: time.Now(),
			OffenderName:     "Tremblay",
			Fault:            infractionTypes.FAULT_DOWNHILL,
			Sector:           "mont-orford",
			Trail:            "4 KM",
			OffPiste:         true,
		},
	}}
	router, token := infractionsTestRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/v1/infractions/"+id.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var body struct {
		Infraction infractionTypes.Infraction `json:"infraction"`
		Location   string                     `json:"location"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Location != "Mont-Orford - 4 KM (Hors-piste)" {
		t.Errorf("unexpected formatted location %q", body.Location)
	}
	if body.Infraction.OffenderName != "Tremblay" {
		t.Errorf("detail must carry the record, got %q", body.Infraction.OffenderName)
	}
}

func TestInfractionDetailNotFound(t *testing.T) {
	store := &fakeReportStore{reports: map[string]*infractionTypes.Infraction{}}
	router, token := infractionsTestRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/v1/infractions/"+primitive.NewObjectID().Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", recorder.Code, recorder.Body.String())
	}
}
