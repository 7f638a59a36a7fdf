package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/vvaraldi/Infraction-Orford/pkg/apihelpers/middlewares"
	"github.com/vvaraldi/Infraction-Orford/pkg/console"
	infractionDB "github.com/vvaraldi/Infraction-Orford/pkg/db/infraction"
	"github.com/vvaraldi/Infraction-Orford/pkg/refdata"
)

func (h *HttpEndpoints) AddInfractionManagementAPI(rg *gin.RouterGroup) {
	infractionsGroup := rg.Group("/infractions")
	infractionsGroup.Use(mw.GetAndValidatePatrollerJWT(h.tokenSignKey))
	infractionsGroup.Use(mw.IsAdminUser())
	{
		infractionsGroup.GET("", h.getInfractions)
		infractionsGroup.GET("/:id", h.getInfraction)
		infractionsGroup.PUT("/:id/comment", mw.RequirePayload(), h.saveReviewerComment)
		infractionsGroup.POST("/:id/toggle-archive", h.toggleArchive)
	}
}

func (h *HttpEndpoints) getInfractions(c *gin.Context) {
	includeArchived := c.DefaultQuery("includeArchived", "false") == "true"
	sortBy := console.ParseSortBy(c.DefaultQuery("sortBy", ""))

	infractions, err := h.console.ListInfractions(includeArchived, sortBy)
	if err != nil {
		slog.Error("failed to list infractions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list infractions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"infractions": infractions})
}

func (h *HttpEndpoints) getInfraction(c *gin.Context) {
	infraction, err := h.console.GetInfraction(c.Param("id"))
	if err != nil {
		if errors.Is(err, infractionDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "infraction not found"})
			return
		}
		slog.Error("failed to fetch infraction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch infraction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"infraction": infraction,
		"location":   refdata.FormatLocation(infraction.Sector, infraction.Trail, infraction.OffPiste),
	})
}

type SaveCommentReq struct {
	Comment string `json:"comment"`
}

func (h *HttpEndpoints) saveReviewerComment(c *gin.Context) {
	var req SaveCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.console.SaveReviewerComment(c.Param("id"), req.Comment); err != nil {
		if errors.Is(err, infractionDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "infraction not found"})
			return
		}
		slog.Error("failed to save comment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "comment saved"})
}

func (h *HttpEndpoints) toggleArchive(c *gin.Context) {
	archived, err := h.console.ToggleArchive(c.Param("id"))
	if err != nil {
		if errors.Is(err, infractionDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "infraction not found"})
			return
		}
		slog.Error("failed to toggle archive state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle archive state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": archived})
}
