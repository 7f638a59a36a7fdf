package patroller

import "time"

// role codes
const (
	ROLE_ADMIN     = "admin"
	ROLE_PATROLLER = "patroller"
)

// status codes
const (
	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
)

// Patroller is the profile record of a reporter account. The document id
// equals the identity provider's principal id, it is never generated by this
// system. Email is immutable after creation; role, status and the access
// flags are administrator-mutable only.
type Patroller struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email" bson:"email"`
	Role            string    `json:"role" bson:"role"`
	Status          string    `json:"status" bson:"status"`
	AllowInfraction bool      `json:"allowInfraction" bson:"allowInfraction"`
	AllowInspection bool      `json:"allowInspection" bson:"allowInspection"`
	CreatedAt       time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	ModifiedAt      time.Time `json:"modifiedAt,omitempty" bson:"modifiedAt,omitempty"`
}

func (p *Patroller) IsAdmin() bool {
	return p.Role == ROLE_ADMIN
}
