package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vvaraldi/Infraction-Orford/pkg/console"
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	"github.com/vvaraldi/Infraction-Orford/pkg/session"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey     string
	tokenExpiresIn   time.Duration
	patrollerDBConn  session.ProfileStore
	identityProvider identity.Provider
	console          *console.Console
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	patrollerDBConn session.ProfileStore,
	identityProvider identity.Provider,
	reviewConsole *console.Console,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:     tokenSignKey,
		tokenExpiresIn:   tokenExpiresIn,
		patrollerDBConn:  patrollerDBConn,
		identityProvider: identityProvider,
		console:          reviewConsole,
	}
}
