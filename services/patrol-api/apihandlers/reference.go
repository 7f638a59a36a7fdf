package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vvaraldi/Infraction-Orford/pkg/refdata"
	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

// AddReferenceAPI exposes the static reference tables: sectors with their
// trails and the fault/practice enumerations. Trail lists derive from the
// table synchronously, a sector choice never needs a second round-trip.
func (h *HttpEndpoints) AddReferenceAPI(rg *gin.RouterGroup) {
	referenceGroup := rg.Group("/reference")
	{
		referenceGroup.GET("/sectors", h.getSectors)
		referenceGroup.GET("/faults", h.getFaults)
	}
}

func (h *HttpEndpoints) getSectors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sectors": refdata.AllSectors()})
}

func (h *HttpEndpoints) getFaults(c *gin.Context) {
	faults := []gin.H{}
	for _, fault := range []string{
		infractionTypes.FAULT_DOWNHILL,
		infractionTypes.FAULT_SAUT_DANGEREUX,
		infractionTypes.FAULT_SKI_HORS_PISTE,
		infractionTypes.FAULT_SKI_PISTE_FERMEE,
		infractionTypes.FAULT_SAUT_DES_CHAISES,
		infractionTypes.FAULT_MANOEUVRE_DANGEREUSE,
		infractionTypes.FAULT_AUTRES,
	} {
		faults = append(faults, gin.H{"code": fault, "label": infractionTypes.FaultDisplayName(fault)})
	}
	c.JSON(http.StatusOK, gin.H{"faults": faults})
}
