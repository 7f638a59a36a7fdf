package session

import (
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

// AuthorizeProfile enforces the access policy on a fetched profile record.
// The same checks back the session gate and the HTTP login handlers:
// a missing profile, an inactive account and a missing infraction access
// flag are all denials, each with its own classified error.
func AuthorizeProfile(profile *patrollerTypes.Patroller) error {
	if profile == nil {
		return identity.NewAuthError(identity.CodeProfileNotFound, "profile not found, contact the administrator")
	}
	if profile.Status != patrollerTypes.STATUS_ACTIVE {
		return identity.NewAuthError(identity.CodeAccountDisabled, "account disabled, contact the administrator")
	}
	if !profile.AllowInfraction {
		return identity.NewAuthError(identity.CodeAccessDenied, "no access to the infraction system, contact the administrator")
	}
	return nil
}
