package infraction

import (
	"time"

	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

// Older documents were written with different names for the admin overlay
// fields. Reads go through this single shim instead of per-field fallbacks in
// display code; writes always use the canonical names.
//
//	commentsAndSanctionAdmin   -> adminComments
//	timestampModificationAdmin -> adminModifiedAt
//	timestampArchivedAdmin     -> archivedAt
type infractionDoc struct {
	infractionTypes.Infraction `bson:",inline"`

	LegacyAdminComments   string     `bson:"commentsAndSanctionAdmin,omitempty"`
	LegacyAdminModifiedAt *time.Time `bson:"timestampModificationAdmin,omitempty"`
	LegacyArchivedAt      *time.Time `bson:"timestampArchivedAdmin,omitempty"`
}

// normalize resolves legacy field names into the canonical schema. Canonical
// values win when both spellings are present.
func (doc *infractionDoc) normalize() infractionTypes.Infraction {
	report := doc.Infraction
	if report.AdminComments == "" && doc.LegacyAdminComments != "" {
		report.AdminComments = doc.LegacyAdminComments
	}
	if report.AdminModifiedAt == nil && doc.LegacyAdminModifiedAt != nil {
		report.AdminModifiedAt = doc.LegacyAdminModifiedAt
	}
	if report.ArchivedAt == nil && doc.LegacyArchivedAt != nil {
		report.ArchivedAt = doc.LegacyArchivedAt
	}
	return report
}
