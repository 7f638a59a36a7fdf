package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/vvaraldi/Infraction-Orford/pkg/apihelpers/middlewares"
	"github.com/vvaraldi/Infraction-Orford/pkg/console"
	patrollerDB "github.com/vvaraldi/Infraction-Orford/pkg/db/patroller"
	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

func (h *HttpEndpoints) AddPatrollerManagementAPI(rg *gin.RouterGroup) {
	patrollersGroup := rg.Group("/patrollers")
	patrollersGroup.Use(mw.GetAndValidatePatrollerJWT(h.tokenSignKey))
	patrollersGroup.Use(mw.IsAdminUser())
	{
		patrollersGroup.GET("", h.getPatrollers)
		patrollersGroup.POST("", mw.RequirePayload(), h.createPatroller)
		patrollersGroup.GET("/:id", h.getPatroller)
		patrollersGroup.PUT("/:id", mw.RequirePayload(), h.updatePatroller)
		patrollersGroup.DELETE("/:id", h.deletePatroller)
	}
}

func (h *HttpEndpoints) getPatrollers(c *gin.Context) {
	patrollers, err := h.console.ListAccounts()
	if err != nil {
		slog.Error("failed to list patrollers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list patrollers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patrollers": patrollers})
}

func (h *HttpEndpoints) getPatroller(c *gin.Context) {
	profile, err := h.console.GetAccount(c.Param("id"))
	if err != nil {
		if errors.Is(err, patrollerDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patroller not found"})
			return
		}
		slog.Error("failed to fetch patroller", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch patroller"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type CreatePatrollerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	Status          string `json:"status"`
	AllowInfraction bool   `json:"allowInfraction"`
	AllowInspection bool   `json:"allowInspection"`
}

func (h *HttpEndpoints) createPatroller(c *gin.Context) {
	var req CreatePatrollerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	if req.Role == "" {
		req.Role = patrollerTypes.ROLE_PATROLLER
	}
	if req.Status == "" {
		req.Status = patrollerTypes.STATUS_ACTIVE
	}

	profile, err := h.console.CreateAccount(console.NewAccount{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		Status:          req.Status,
		AllowInfraction: req.AllowInfraction,
		AllowInspection: req.AllowInspection,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

type UpdatePatrollerReq struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Status          string `json:"status"`
	AllowInfraction bool   `json:"allowInfraction"`
	AllowInspection bool   `json:"allowInspection"`
	Password        string `json:"password"`
}

func (h *HttpEndpoints) updatePatroller(c *gin.Context) {
	var req UpdatePatrollerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.console.UpdateAccount(c.Param("id"), console.AccountUpdate{
		Name:            req.Name,
		Role:            req.Role,
		Status:          req.Status,
		AllowInfraction: req.AllowInfraction,
		AllowInspection: req.AllowInspection,
		Password:        req.Password,
	})
	if err != nil {
		if errors.Is(err, console.ErrPasswordOutOfBand) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, patrollerDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patroller not found"})
			return
		}
		slog.Error("failed to update patroller", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update patroller"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "patroller updated"})
}

func (h *HttpEndpoints) deletePatroller(c *gin.Context) {
	if err := h.console.DeleteAccount(c.Param("id")); err != nil {
		if errors.Is(err, patrollerDB.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patroller not found"})
			return
		}
		slog.Error("failed to delete patroller", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete patroller"})
		return
	}
	// only the profile record is removed, the credential stays
	c.JSON(http.StatusOK, gin.H{"msg": "patroller deleted"})
}
