package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/vvaraldi/Infraction-Orford/pkg/apihelpers/middlewares"
	patrollerDB "github.com/vvaraldi/Infraction-Orford/pkg/db/patroller"
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	jwthandling "github.com/vvaraldi/Infraction-Orford/pkg/jwt-handling"
	"github.com/vvaraldi/Infraction-Orford/pkg/session"
)

func (h *HttpEndpoints) AddPatrolAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", mw.RequirePayload(), h.loginWithEmail)
		authGroup.GET("/token/validate", mw.GetAndValidatePatrollerJWT(h.tokenSignKey), h.validateToken)
	}
}

type LoginWithEmailReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) loginWithEmail(c *gin.Context) {
	var req LoginWithEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email == "" || req.Password == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	principal, err := h.identityProvider.SignIn(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	profile, err := h.patrollerDBConn.GetPatrollerByID(principal.UID)
	if err != nil {
		h.forceSignOut()
		// a missing profile and a backend failure are different denials
		if errors.Is(err, patrollerDB.ErrNotFound) {
			slog.Warn("login for principal without profile", slog.String("uid", principal.UID))
			respondAuthError(c, identity.NewAuthError(identity.CodeProfileNotFound, "profile not found, contact the administrator"))
			return
		}
		slog.Error("failed to load profile during login", slog.String("error", err.Error()))
		respondAuthError(c, identity.NewAuthError(identity.CodeVerificationFailed, "verification failed, try again later"))
		return
	}

	// status and access flags are re-validated on every login
	if err := session.AuthorizeProfile(profile); err != nil {
		h.forceSignOut()
		respondAuthError(c, err)
		return
	}

	token, err := jwthandling.GenerateNewPatrollerToken(
		h.tokenExpiresIn,
		profile.ID,
		profile.Name,
		profile.IsAdmin(),
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": h.tokenExpiresIn.Seconds(),
		"profile":   profile,
	})
}

func (h *HttpEndpoints) validateToken(c *gin.Context) {
	tokenValue, ok := c.Get("validatedToken")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	claims := tokenValue.(*jwthandling.PatrollerClaims)
	c.JSON(http.StatusOK, gin.H{
		"id":      claims.Subject,
		"name":    claims.Name,
		"isAdmin": claims.IsAdmin,
	})
}

// forceSignOut clears the provider session after a failed login check, so a
// denied login never leaves a live credential behind.
func (h *HttpEndpoints) forceSignOut() {
	if err := h.identityProvider.SignOut(); err != nil {
		slog.Error("failed to sign out denied session", slog.String("error", err.Error()))
	}
}

func respondAuthError(c *gin.Context, err error) {
	var authErr *identity.AuthError
	if !errors.As(err, &authErr) {
		slog.Error("unexpected login error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusUnauthorized
	switch authErr.Code {
	case identity.CodeAccountDisabled, identity.CodeAccessDenied, identity.CodeProfileNotFound:
		status = http.StatusForbidden
	case identity.CodeVerificationFailed:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": authErr.Message})
}
