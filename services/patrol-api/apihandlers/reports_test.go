package apihandlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dbInfraction "github.com/vvaraldi/Infraction-Orford/pkg/db/infraction"
	jwthandling "github.com/vvaraldi/Infraction-Orford/pkg/jwt-handling"
	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

const testSignKey = "test-sign-key"

type fakeReportStore struct {
	reports   map[string]*infractionTypes.Infraction
	lastLimit int64
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: map[string]*infractionTypes.Infraction{}}
}

func (s *fakeReportStore) CreateInfraction(newInfraction *infractionTypes.Infraction) (*infractionTypes.Infraction, error) {
	newInfraction.ID = primitive.NewObjectID()
	newInfraction.CreatedAt = time.Now()
	newInfraction.ModifiedAt = newInfraction.CreatedAt
	stored := *newInfraction
	s.reports[newInfraction.ID.Hex()] = &stored
	return newInfraction, nil
}

func (s *fakeReportStore) GetInfractionByID(id string) (infractionTypes.Infraction, error) {
	stored, ok := s.reports[id]
	if !ok {
		return infractionTypes.Infraction{}, dbInfraction.ErrNotFound
	}
	return *stored, nil
}

func (s *fakeReportStore) UpdateInfractionContent(id string, updated *infractionTypes.Infraction) error {
	stored, ok := s.reports[id]
	if !ok {
		return dbInfraction.ErrNotFound
	}
	stored.OffenceTimestamp = updated.OffenceTimestamp
	stored.OffenderName = updated.OffenderName
	stored.OffenderImageURL = updated.OffenderImageURL
	stored.OffenderQRCode = updated.OffenderQRCode
	stored.OffenderQRImageURL = updated.OffenderQRImageURL
	stored.Fault = updated.Fault
	stored.FaultDisplayName = updated.FaultDisplayName
	stored.Sector = updated.Sector
	stored.Trail = updated.Trail
	stored.OffPiste = updated.OffPiste
	stored.Practice = updated.Practice
	stored.OffenceType = updated.OffenceType
	stored.ModifiedAt = time.Now()
	return nil
}

func (s *fakeReportStore) GetInfractionsForPatroller(patrolID string, limit int64) ([]infractionTypes.Infraction, error) {
	s.lastLimit = limit
	reports := []infractionTypes.Infraction{}
	for _, stored := range s.reports {
		if stored.PatrolID == patrolID {
			reports = append(reports, *stored)
		}
	}
	return reports, nil
}

type stubFileStore struct{}

func (stubFileStore) Upload(ctx context.Context, objectPath string, contentType string, reader io.Reader) (string, error) {
	return "http://files.local/" + objectPath, nil
}

func reportsTestRouter(t *testing.T, store *fakeReportStore) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := &HttpEndpoints{
		tokenSignKey:     testSignKey,
		tokenExpiresIn:   time.Minute,
		infractionDBConn: store,
		files:            stubFileStore{},
	}
	router := gin.New()
	h.AddReportsAPI(router.Group("/v1"))

	token, err := jwthandling.GenerateNewPatrollerToken(time.Minute, "patrol-7", "Julie Gagnon", false, testSignKey)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return router, token
}

func seedStoredReport(store *fakeReportStore) string {
	id := primitive.NewObjectID()
	store.reports[id.Hex()] = &infractionTypes.Infraction{
		ID:                 id,
		PatrolID:           "patrol-7",
		PatrolName:         "Julie Gagnon",
		OffenceTimestamp:   time.Now(),
		OffenderName:       "Tremblay",
		OffenderImageURL:   "http://files.local/infractions/patrol-7/1-photo.jpg",
		OffenderQRCode:     "MEMBER-4821",
		OffenderQRImageURL: "http://files.local/infractions/patrol-7/1-scan.jpg",
		Fault:              infractionTypes.FAULT_DOWNHILL,
		Sector:             "mont-orford",
		Trail:              "4 KM",
		Practice:           infractionTypes.PRACTICE_SKI_ALPIN,
		OffenceType:        "vitesse excessive",
		CreatedAt:          time.Now(),
		ModifiedAt:         time.Now(),
	}
	return id.Hex()
}

func amendForm() url.Values {
	return url.Values{
		"offenceDate":  {"2026-02-14"},
		"offenceTime":  {"13:45"},
		"offenderName": {"Tremblay"},
		"fault":        {infractionTypes.FAULT_DOWNHILL},
		"sector":       {"mont-orford"},
		"trail":        {"4 KM"},
		"practice":     {infractionTypes.PRACTICE_SKI_ALPIN},
		"offenceType":  {"vitesse excessive"},
	}
}

func performForm(router *gin.Engine, token string, method string, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAmendKeepsStoredScanByDefault(t *testing.T) {
	store := newFakeReportStore()
	id := seedStoredReport(store)
	router, token := reportsTestRouter(t, store)

	recorder := performForm(router, token, http.MethodPut, "/v1/reports/"+id, amendForm())
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	stored := store.reports[id]
	if stored.OffenderQRCode != "MEMBER-4821" || stored.OffenderQRImageURL == "" {
		t.Errorf("amend without removal must keep the stored scan, got %q/%q", stored.OffenderQRCode, stored.OffenderQRImageURL)
	}
	if stored.OffenderImageURL == "" {
		t.Error("amend without removal must keep the stored photo")
	}
}

func TestAmendRemoveFieldsClearStoredAttachments(t *testing.T) {
	store := newFakeReportStore()
	id := seedStoredReport(store)
	router, token := reportsTestRouter(t, store)

	form := amendForm()
	form.Set("removeScan", "true")
	form.Set("removePhoto", "true")
	recorder := performForm(router, token, http.MethodPut, "/v1/reports/"+id, form)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	stored := store.reports[id]
	if stored.OffenderQRCode != "" || stored.OffenderQRImageURL != "" {
		t.Errorf("removeScan must clear the stored scan, got %q/%q", stored.OffenderQRCode, stored.OffenderQRImageURL)
	}
	if stored.OffenderImageURL != "" {
		t.Errorf("removePhoto must clear the stored photo, got %q", stored.OffenderImageURL)
	}
}

func TestAmendReplacesStoredScan(t *testing.T) {
	store := newFakeReportStore()
	id := seedStoredReport(store)
	router, token := reportsTestRouter(t, store)

	form := amendForm()
	form.Set("scanPayload", "MEMBER-9917")
	recorder := performForm(router, token, http.MethodPut, "/v1/reports/"+id, form)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	if store.reports[id].OffenderQRCode != "MEMBER-9917" {
		t.Errorf("a new payload must replace the stored scan, got %q", store.reports[id].OffenderQRCode)
	}
}

func TestOwnReportsListIsBoundedByDefault(t *testing.T) {
	store := newFakeReportStore()
	seedStoredReport(store)
	router, token := reportsTestRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if store.lastLimit != ownReportsDefaultLimit {
		t.Errorf("list without an explicit limit must be bounded to %d, got %d", ownReportsDefaultLimit, store.lastLimit)
	}

	var body struct {
		Reports []infractionTypes.Infraction `json:"reports"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Reports) != 1 {
		t.Errorf("expected the seeded report in the list, got %d entries", len(body.Reports))
	}
}
