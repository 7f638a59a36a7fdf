// Package editor implements the report editing lifecycle: creating a new
// infraction report, amending an existing one and duplicating a loaded report
// into a fresh draft. The two save paths are strictly separated and staged
// attachments are uploaded before any document write, so an upload failure
// never leaves a half-written record.
package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vvaraldi/Infraction-Orford/pkg/filestore"
	"github.com/vvaraldi/Infraction-Orford/pkg/imaging"
	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

var (
	ErrNotNewReport   = errors.New("a stored report is loaded, use Amend")
	ErrNoReportLoaded = errors.New("no stored report loaded, use SubmitNew")
)

// UploadError marks an attachment transfer failure; the enclosing save is
// aborted and no document is written.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q failed: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ReportStore is the persistence contract of the editor, implemented by the
// infraction DB service.
type ReportStore interface {
	CreateInfraction(newInfraction *infractionTypes.Infraction) (*infractionTypes.Infraction, error)
	GetInfractionByID(id string) (infractionTypes.Infraction, error)
	UpdateInfractionContent(id string, updated *infractionTypes.Infraction) error
	GetInfractionsForPatroller(patrolID string, limit int64) ([]infractionTypes.Infraction, error)
}

// Draft holds the user-entered field values. Date and time are kept separate
// until save, where they merge into the offence instant.
type Draft struct {
	OffenceDate  string
	OffenceTime  string
	OffenderName string
	Fault        string
	Sector       string
	Trail        string
	OffPiste     bool
	Practice     string
	OffenceType  string
}

const ownReportsLimit = 50

// Editor manages one reporter's editing session. It is either in the
// new-report state (isNewReport, no current id) or has a stored report
// loaded; SubmitNew and Amend each only run in their own state.
type Editor struct {
	store    ReportStore
	files    filestore.Store
	location *time.Location
	now      func() time.Time

	patrolID   string
	patrolName string

	isNewReport     bool
	currentReportID string
	draft           Draft

	stagedPhoto []byte
	photoURL    string

	scanPayload string
	stagedScan  []byte
	scanURL     string

	ownReports []infractionTypes.Infraction
}

func NewEditor(store ReportStore, files filestore.Store, patrolID string, patrolName string) *Editor {
	editor := &Editor{
		store:      store,
		files:      files,
		location:   time.Local,
		now:        time.Now,
		patrolID:   patrolID,
		patrolName: patrolName,
	}
	editor.NewReport()
	return editor
}

// NewReport resets to the new-report state with default field values: the
// current date and time, everything else empty.
func (e *Editor) NewReport() {
	now := e.now().In(e.location)
	e.isNewReport = true
	e.currentReportID = ""
	e.draft = Draft{
		OffenceDate: now.Format(dateLayout),
		OffenceTime: now.Format(timeLayout),
	}
	e.stagedPhoto = nil
	e.photoURL = ""
	e.scanPayload = ""
	e.stagedScan = nil
	e.scanURL = ""
}

// Load fetches a stored report and populates every field from it. The trail
// value applies directly because the sector's trail list derives from the
// static reference table, not an asynchronous lookup.
func (e *Editor) Load(id string) error {
	stored, err := e.store.GetInfractionByID(id)
	if err != nil {
		return err
	}

	offence := stored.OffenceTimestamp.In(e.location)
	e.isNewReport = false
	e.currentReportID = id
	e.draft = Draft{
		OffenceDate:  offence.Format(dateLayout),
		OffenceTime:  offence.Format(timeLayout),
		OffenderName: stored.OffenderName,
		Fault:        stored.Fault,
		Sector:       stored.Sector,
		Trail:        stored.Trail,
		OffPiste:     stored.OffPiste,
		Practice:     stored.Practice,
		OffenceType:  stored.OffenceType,
	}
	e.stagedPhoto = nil
	e.photoURL = stored.OffenderImageURL
	e.scanPayload = stored.OffenderQRCode
	e.stagedScan = nil
	e.scanURL = stored.OffenderQRImageURL
	return nil
}

func (e *Editor) IsNewReport() bool {
	return e.isNewReport
}

func (e *Editor) CurrentReportID() string {
	return e.currentReportID
}

func (e *Editor) Draft() Draft {
	return e.draft
}

func (e *Editor) SetDraft(draft Draft) {
	e.draft = draft
}

// OwnReports returns the reporter's own report list as of the last refresh.
func (e *Editor) OwnReports() []infractionTypes.Infraction {
	return e.ownReports
}

func (e *Editor) RefreshOwnReports() error {
	reports, err := e.store.GetInfractionsForPatroller(e.patrolID, ownReportsLimit)
	if err != nil {
		return err
	}
	e.ownReports = reports
	return nil
}

// StagePhoto downscales a selected image and stages it for the next save.
func (e *Editor) StagePhoto(reader io.Reader) error {
	downscaled, err := imaging.Downscale(reader)
	if err != nil {
		return err
	}
	e.stagedPhoto = downscaled
	return nil
}

func (e *Editor) RemovePhoto() {
	e.stagedPhoto = nil
	e.photoURL = ""
}

// StageScan stages a decoded code payload together with the snapshot frame
// it was read from.
func (e *Editor) StageScan(payload string, snapshotJPEG []byte) {
	e.scanPayload = payload
	e.stagedScan = snapshotJPEG
}

func (e *Editor) RemoveScan() {
	e.scanPayload = ""
	e.stagedScan = nil
	e.scanURL = ""
}

func (e *Editor) ScanPayload() string {
	return e.scanPayload
}

// SubmitNew validates the draft, uploads staged attachments and inserts the
// report. Only permitted in the new-report state; validation or upload
// failure aborts before any document write. On success the own-report list is
// refreshed and the editor resets to a fresh draft.
func (e *Editor) SubmitNew(ctx context.Context) (*infractionTypes.Infraction, error) {
	if !e.isNewReport {
		return nil, ErrNotNewReport
	}
	if err := e.draft.validate(e.scanPayload != ""); err != nil {
		return nil, err
	}
	if err := e.uploadStaged(ctx); err != nil {
		return nil, err
	}

	report := &infractionTypes.Infraction{
		PatrolID:           e.patrolID,
		PatrolName:         e.patrolName,
		OffenceTimestamp:   e.draft.offenceInstant(e.location),
		OffenderName:       e.draft.OffenderName,
		OffenderImageURL:   e.photoURL,
		OffenderQRCode:     e.scanPayload,
		OffenderQRImageURL: e.scanURL,
		Fault:              e.draft.Fault,
		FaultDisplayName:   infractionTypes.FaultDisplayName(e.draft.Fault),
		Sector:             e.draft.Sector,
		Trail:              e.draft.Trail,
		OffPiste:           e.draft.OffPiste,
		Practice:           e.draft.Practice,
		OffenceType:        e.draft.OffenceType,
	}

	created, err := e.store.CreateInfraction(report)
	if err != nil {
		return nil, err
	}

	// the report is saved at this point; a failed list refresh is not a
	// submit failure
	if err := e.RefreshOwnReports(); err != nil {
		slog.Warn("failed to refresh own report list", slog.String("error", err.Error()))
	}
	e.NewReport()
	return created, nil
}

// Amend validates the draft, uploads staged attachments and updates the
// loaded report's content fields. Authorship, creation timestamp and the
// admin overlay are never part of the update.
func (e *Editor) Amend(ctx context.Context) error {
	if e.isNewReport || e.currentReportID == "" {
		return ErrNoReportLoaded
	}
	if err := e.draft.validate(e.scanPayload != ""); err != nil {
		return err
	}
	if err := e.uploadStaged(ctx); err != nil {
		return err
	}

	updated := &infractionTypes.Infraction{
		OffenceTimestamp:   e.draft.offenceInstant(e.location),
		OffenderName:       e.draft.OffenderName,
		OffenderImageURL:   e.photoURL,
		OffenderQRCode:     e.scanPayload,
		OffenderQRImageURL: e.scanURL,
		Fault:              e.draft.Fault,
		FaultDisplayName:   infractionTypes.FaultDisplayName(e.draft.Fault),
		Sector:             e.draft.Sector,
		Trail:              e.draft.Trail,
		OffPiste:           e.draft.OffPiste,
		Practice:           e.draft.Practice,
		OffenceType:        e.draft.OffenceType,
	}
	return e.store.UpdateInfractionContent(e.currentReportID, updated)
}

// DuplicateAsNew copies the currently entered field values into a fresh
// draft: the report id is cleared, the offence timestamp resets to now and
// the admin overlay is not carried over. No store operation happens here.
func (e *Editor) DuplicateAsNew() {
	now := e.now().In(e.location)
	e.isNewReport = true
	e.currentReportID = ""
	e.draft.OffenceDate = now.Format(dateLayout)
	e.draft.OffenceTime = now.Format(timeLayout)
}

// uploadStaged pushes staged attachments to blob storage under a path
// namespaced by reporter id and upload timestamp. Runs before any document
// write.
func (e *Editor) uploadStaged(ctx context.Context) error {
	stamp := e.now().UnixMilli()

	if e.stagedPhoto != nil {
		objectPath := fmt.Sprintf("infractions/%s/%d-photo.jpg", e.patrolID, stamp)
		url, err := e.files.Upload(ctx, objectPath, "image/jpeg", bytes.NewReader(e.stagedPhoto))
		if err != nil {
			return &UploadError{Path: objectPath, Err: err}
		}
		e.photoURL = url
		e.stagedPhoto = nil
	}

	if e.stagedScan != nil {
		objectPath := fmt.Sprintf("infractions/%s/%d-scan.jpg", e.patrolID, stamp)
		url, err := e.files.Upload(ctx, objectPath, "image/jpeg", bytes.NewReader(e.stagedScan))
		if err != nil {
			return &UploadError{Path: objectPath, Err: err}
		}
		e.scanURL = url
		e.stagedScan = nil
	}
	return nil
}
