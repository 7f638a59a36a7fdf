package infraction

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fault type codes
const (
	FAULT_DOWNHILL             = "downhill"
	FAULT_SAUT_DANGEREUX       = "saut-dangereux"
	FAULT_SKI_HORS_PISTE       = "ski-hors-piste"
	FAULT_SKI_PISTE_FERMEE     = "ski-piste-fermee"
	FAULT_SAUT_DES_CHAISES     = "saut-des-chaises"
	FAULT_MANOEUVRE_DANGEREUSE = "manoeuvre-dangereuse"
	FAULT_AUTRES               = "autres"
)

// practice type codes
const (
	PRACTICE_SKI_ALPIN          = "ski-alpin"
	PRACTICE_PLANCHE            = "planche"
	PRACTICE_RANDONNEE_ALPINE   = "randonnee-alpine"
	PRACTICE_RANDONNEE_PEDESTRE = "randonnee-pedestre"
	PRACTICE_AUTRE              = "autre"
)

var faultDisplayNames = map[string]string{
	FAULT_DOWNHILL:             "Downhill",
	FAULT_SAUT_DANGEREUX:       "Saut dangereux",
	FAULT_SKI_HORS_PISTE:       "Ski hors piste",
	FAULT_SKI_PISTE_FERMEE:     "Ski piste fermée",
	FAULT_SAUT_DES_CHAISES:     "Saut des chaises",
	FAULT_MANOEUVRE_DANGEREUSE: "Manoeuvre dangereuse",
	FAULT_AUTRES:               "Autres (voir commentaire)",
}

var practiceDisplayNames = map[string]string{
	PRACTICE_SKI_ALPIN:          "Ski alpin",
	PRACTICE_PLANCHE:            "Planche à neige",
	PRACTICE_RANDONNEE_ALPINE:   "Randonnée alpine",
	PRACTICE_RANDONNEE_PEDESTRE: "Randonnée pédestre",
	PRACTICE_AUTRE:              "Autre",
}

// FaultDisplayName returns the display label for a fault code, falling back
// to the raw code for values written before the enumeration was fixed.
func FaultDisplayName(fault string) string {
	if name, ok := faultDisplayNames[fault]; ok {
		return name
	}
	return fault
}

func IsValidFault(fault string) bool {
	_, ok := faultDisplayNames[fault]
	return ok
}

func PracticeDisplayName(practice string) string {
	if name, ok := practiceDisplayNames[practice]; ok {
		return name
	}
	return practice
}

// Infraction is the central report document. Authorship fields (PatrolID,
// PatrolName) and CreatedAt are set once at creation and never updated.
// The admin overlay (AdminComments, AdminModifiedAt, Archived, ArchivedAt)
// is only written by the review console.
type Infraction struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PatrolID           string             `json:"patrolId" bson:"patrolId"`
	PatrolName         string             `json:"patrolName" bson:"patrolName"`
	OffenceTimestamp   time.Time          `json:"offenceTimestamp" bson:"offenceTimestamp"`
	OffenderName       string             `json:"offenderName,omitempty" bson:"offenderName,omitempty"`
	OffenderImageURL   string             `json:"offenderImageUrl,omitempty" bson:"offenderImageUrl,omitempty"`
	OffenderQRCode     string             `json:"offenderQRCode,omitempty" bson:"offenderQRCode,omitempty"`
	OffenderQRImageURL string             `json:"offenderQRImageUrl,omitempty" bson:"offenderQRImageUrl,omitempty"`
	Fault              string             `json:"fault" bson:"fault"`
	FaultDisplayName   string             `json:"faultDisplayName,omitempty" bson:"faultDisplayName,omitempty"`
	Sector             string             `json:"sector" bson:"sector"`
	Trail              string             `json:"trail,omitempty" bson:"trail,omitempty"`
	OffPiste           bool               `json:"offPiste" bson:"offPiste"`
	Practice           string             `json:"practice,omitempty" bson:"practice,omitempty"`
	OffenceType        string             `json:"offenceType,omitempty" bson:"offenceType,omitempty"`
	Archived           bool               `json:"archived" bson:"archived"`
	ArchivedAt         *time.Time         `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	AdminComments      string             `json:"adminComments,omitempty" bson:"adminComments,omitempty"`
	AdminModifiedAt    *time.Time         `json:"adminModifiedAt,omitempty" bson:"adminModifiedAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	ModifiedAt         time.Time          `json:"modifiedAt" bson:"modifiedAt"`
}
