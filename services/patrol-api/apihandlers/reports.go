package apihandlers

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mw "github.com/vvaraldi/Infraction-Orford/pkg/apihelpers/middlewares"
	infractionDB "github.com/vvaraldi/Infraction-Orford/pkg/db/infraction"
	"github.com/vvaraldi/Infraction-Orford/pkg/editor"
	jwthandling "github.com/vvaraldi/Infraction-Orford/pkg/jwt-handling"
	"github.com/vvaraldi/Infraction-Orford/pkg/scanner"
	"github.com/vvaraldi/Infraction-Orford/pkg/utils"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

const ownReportsDefaultLimit = 50

func (h *HttpEndpoints) AddReportsAPI(rg *gin.RouterGroup) {
	reportsGroup := rg.Group("/reports")
	reportsGroup.Use(mw.GetAndValidatePatrollerJWT(h.tokenSignKey))
	{
		reportsGroup.GET("", h.getOwnReports)
		reportsGroup.GET("/:id", h.getReport)
		reportsGroup.GET("/:id/duplicate", h.getReportAsDuplicate)
		reportsGroup.POST("", h.submitNewReport)
		reportsGroup.PUT("/:id", h.amendReport)
	}

	scanGroup := rg.Group("/scan")
	scanGroup.Use(mw.GetAndValidatePatrollerJWT(h.tokenSignKey))
	{
		scanGroup.POST("", h.decodeScannedCode)
	}
}

func (h *HttpEndpoints) currentClaims(c *gin.Context) *jwthandling.PatrollerClaims {
	tokenValue, ok := c.Get("validatedToken")
	if !ok {
		return nil
	}
	return tokenValue.(*jwthandling.PatrollerClaims)
}

func (h *HttpEndpoints) editorForRequest(c *gin.Context) *editor.Editor {
	claims := h.currentClaims(c)
	if claims == nil {
		return nil
	}
	return editor.NewEditor(h.infractionDBConn, h.files, claims.Subject, claims.Name)
}

func (h *HttpEndpoints) getOwnReports(c *gin.Context) {
	claims := h.currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	limit := int64(ownReportsDefaultLimit)
	if limitQuery := c.DefaultQuery("limit", ""); limitQuery != "" {
		parsed, err := strconv.ParseInt(limitQuery, 10, 64)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	reports, err := h.infractionDBConn.GetInfractionsForPatroller(claims.Subject, limit)
	if err != nil {
		slog.Error("failed to fetch own reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *HttpEndpoints) getReport(c *gin.Context) {
	report, err := h.infractionDBConn.GetInfractionByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, infractionDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		slog.Error("failed to fetch report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// getReportAsDuplicate loads a report and returns it as a fresh draft: no id,
// offence timestamp reset to now, admin overlay dropped. Nothing is written.
func (h *HttpEndpoints) getReportAsDuplicate(c *gin.Context) {
	reportEditor := h.editorForRequest(c)
	if reportEditor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := reportEditor.Load(c.Param("id")); err != nil {
		if errors.Is(err, infractionDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		slog.Error("failed to fetch report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report"})
		return
	}
	reportEditor.DuplicateAsNew()

	c.JSON(http.StatusOK, gin.H{"draft": reportEditor.Draft()})
}

type reportPayload struct {
	OffenceDate  string `form:"offenceDate"`
	OffenceTime  string `form:"offenceTime"`
	OffenderName string `form:"offenderName"`
	Fault        string `form:"fault"`
	Sector       string `form:"sector"`
	Trail        string `form:"trail"`
	OffPiste     bool   `form:"offPiste"`
	Practice     string `form:"practice"`
	OffenceType  string `form:"offenceType"`
	ScanPayload  string `form:"scanPayload"`

	// removal requests for attachments already stored on the report
	RemovePhoto bool `form:"removePhoto"`
	RemoveScan  bool `form:"removeScan"`
}

func (p reportPayload) toDraft() editor.Draft {
	return editor.Draft{
		OffenceDate:  p.OffenceDate,
		OffenceTime:  p.OffenceTime,
		OffenderName: p.OffenderName,
		Fault:        p.Fault,
		Sector:       p.Sector,
		Trail:        p.Trail,
		OffPiste:     p.OffPiste,
		Practice:     p.Practice,
		OffenceType:  p.OffenceType,
	}
}

// stageAttachments moves the optional multipart files into the editor: the
// offender photo is downscaled on staging, the scan snapshot is kept as is.
func stageAttachments(c *gin.Context, reportEditor *editor.Editor, payload reportPayload) error {
	if photoHeader, err := c.FormFile("photo"); err == nil {
		if _, err := utils.ValidateImageUpload(photoHeader, allowedImageTypes); err != nil {
			return err
		}
		photo, err := photoHeader.Open()
		if err != nil {
			return err
		}
		defer photo.Close()
		if err := reportEditor.StagePhoto(photo); err != nil {
			return err
		}
	}

	if payload.ScanPayload != "" {
		var snapshot []byte
		if scanHeader, err := c.FormFile("scanImage"); err == nil {
			snapshot, err = readUpload(scanHeader)
			if err != nil {
				return err
			}
		}
		reportEditor.StageScan(payload.ScanPayload, snapshot)
	}
	return nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func (h *HttpEndpoints) submitNewReport(c *gin.Context) {
	reportEditor := h.editorForRequest(c)
	if reportEditor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var payload reportPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reportEditor.SetDraft(payload.toDraft())

	if err := stageAttachments(c, reportEditor, payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := reportEditor.SubmitNew(c.Request.Context())
	if err != nil {
		respondEditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *HttpEndpoints) amendReport(c *gin.Context) {
	reportEditor := h.editorForRequest(c)
	if reportEditor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := reportEditor.Load(c.Param("id")); err != nil {
		if errors.Is(err, infractionDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		slog.Error("failed to fetch report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report"})
		return
	}

	var payload reportPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reportEditor.SetDraft(payload.toDraft())
	// stored attachments carry over through the loaded editor; an empty
	// scanPayload leaves the stored one in place, removal must be requested
	if payload.RemovePhoto {
		reportEditor.RemovePhoto()
	}
	if payload.RemoveScan {
		reportEditor.RemoveScan()
	}

	if err := stageAttachments(c, reportEditor, payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := reportEditor.Amend(c.Request.Context()); err != nil {
		respondEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "report updated"})
}

// decodeScannedCode extracts a QR payload from an uploaded frame, for clients
// without a live camera pipeline.
func (h *HttpEndpoints) decodeScannedCode(c *gin.Context) {
	frameHeader, err := c.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame missing"})
		return
	}
	if _, err := utils.ValidateImageUpload(frameHeader, allowedImageTypes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frameFile, err := frameHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open frame"})
		return
	}
	defer frameFile.Close()

	frame, _, err := image.Decode(frameFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to decode frame"})
		return
	}

	payload, err := scanner.DecodeImage(frame)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no code found in frame"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": payload})
}

func respondEditorError(c *gin.Context, err error) {
	var validationErr *editor.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "issues": validationErr.Issues})
		return
	}

	var uploadErr *editor.UploadError
	if errors.As(err, &uploadErr) {
		slog.Error("attachment upload failed", slog.String("error", uploadErr.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "attachment upload failed, report not saved"})
		return
	}

	if errors.Is(err, infractionDB.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	slog.Error("failed to save report", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save report"})
}
