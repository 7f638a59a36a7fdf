package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vvaraldi/Infraction-Orford/pkg/editor"
	"github.com/vvaraldi/Infraction-Orford/pkg/filestore"
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	"github.com/vvaraldi/Infraction-Orford/pkg/session"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey     string
	tokenExpiresIn   time.Duration
	infractionDBConn editor.ReportStore
	patrollerDBConn  session.ProfileStore
	identityProvider identity.Provider
	files            filestore.Store
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	infractionDBConn editor.ReportStore,
	patrollerDBConn session.ProfileStore,
	identityProvider identity.Provider,
	files filestore.Store,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:     tokenSignKey,
		tokenExpiresIn:   tokenExpiresIn,
		infractionDBConn: infractionDBConn,
		patrollerDBConn:  patrollerDBConn,
		identityProvider: identityProvider,
		files:            files,
	}
}
