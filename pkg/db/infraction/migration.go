package infraction

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
)

// legacy admin-overlay field names, written by older variants of the tool
const (
	legacyFieldAdminComments   = "commentsAndSanctionAdmin"
	legacyFieldAdminModifiedAt = "timestampModificationAdmin"
	legacyFieldArchivedAt      = "timestampArchivedAdmin"
)

var legacyFieldRenames = map[string]string{
	legacyFieldAdminComments:   "adminComments",
	legacyFieldAdminModifiedAt: "adminModifiedAt",
	legacyFieldArchivedAt:      "archivedAt",
}

// MigrateLegacyAdminFields renames the old admin-overlay field spellings to
// the canonical schema. Documents that already carry the canonical field keep
// it; their legacy value is dropped instead of renamed, the canonical value
// wins.
func (dbService *InfractionDBService) MigrateLegacyAdminFields() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	for legacyField, canonicalField := range legacyFieldRenames {
		res, err := dbService.collectionInfractions().UpdateMany(
			ctx,
			bson.M{
				legacyField:    bson.M{"$exists": true},
				canonicalField: bson.M{"$exists": false},
			},
			bson.M{"$rename": bson.M{legacyField: canonicalField}},
		)
		if err != nil {
			return err
		}
		slog.Info("renamed legacy field", slog.String("from", legacyField), slog.String("to", canonicalField), slog.Int64("count", res.ModifiedCount))

		res, err = dbService.collectionInfractions().UpdateMany(
			ctx,
			bson.M{
				legacyField:    bson.M{"$exists": true},
				canonicalField: bson.M{"$exists": true},
			},
			bson.M{"$unset": bson.M{legacyField: ""}},
		)
		if err != nil {
			return err
		}
		if res.ModifiedCount > 0 {
			slog.Info("dropped legacy field shadowed by canonical value", slog.String("field", legacyField), slog.Int64("count", res.ModifiedCount))
		}
	}
	return nil
}
