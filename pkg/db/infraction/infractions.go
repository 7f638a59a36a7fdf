package infraction

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

// ErrNotFound is returned when a referenced report id no longer exists.
var ErrNotFound = errors.New("infraction not found")

var sortByCreatedAtDesc = bson.D{
	primitive.E{Key: "createdAt", Value: -1},
}

func (dbService *InfractionDBService) CreateInfraction(
	newInfraction *infractionTypes.Infraction,
) (*infractionTypes.Infraction, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now()
	newInfraction.CreatedAt = now
	newInfraction.ModifiedAt = now
	newInfraction.Archived = false

	res, err := dbService.collectionInfractions().InsertOne(ctx, newInfraction)
	if err != nil {
		return nil, err
	}
	newInfraction.ID = res.InsertedID.(primitive.ObjectID)
	return newInfraction, nil
}

func (dbService *InfractionDBService) GetInfractionByID(id string) (infractionTypes.Infraction, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return infractionTypes.Infraction{}, ErrNotFound
	}

	var doc infractionDoc
	err = dbService.collectionInfractions().FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return infractionTypes.Infraction{}, ErrNotFound
		}
		return infractionTypes.Infraction{}, err
	}
	return doc.normalize(), nil
}

// UpdateInfractionContent performs the amend path: only the subject,
// classification, location and attachment fields are written, plus the
// modification timestamp. Authorship, creation timestamp and the admin
// overlay are never touched here.
func (dbService *InfractionDBService) UpdateInfractionContent(
	id string,
	updated *infractionTypes.Infraction,
) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := dbService.collectionInfractions().UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{
			"$set": bson.M{
				"offenceTimestamp":   updated.OffenceTimestamp,
				"offenderName":       updated.OffenderName,
				"offenderImageUrl":   updated.OffenderImageURL,
				"offenderQRCode":     updated.OffenderQRCode,
				"offenderQRImageUrl": updated.OffenderQRImageURL,
				"fault":              updated.Fault,
				"faultDisplayName":   updated.FaultDisplayName,
				"sector":             updated.Sector,
				"trail":              updated.Trail,
				"offPiste":           updated.OffPiste,
				"practice":           updated.Practice,
				"offenceType":        updated.OffenceType,
				"modifiedAt":         time.Now(),
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetInfractionsForPatroller lists one reporter's own reports, newest first.
func (dbService *InfractionDBService) GetInfractionsForPatroller(
	patrolID string,
	limit int64,
) ([]infractionTypes.Infraction, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(sortByCreatedAtDesc)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := dbService.collectionInfractions().Find(ctx, bson.M{"patrolId": patrolID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	infractions := []infractionTypes.Infraction{}
	for cursor.Next(ctx) {
		var doc infractionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		infractions = append(infractions, doc.normalize())
	}
	return infractions, cursor.Err()
}

// GetInfractions lists reports for the review console. The fetch is always
// ordered by creation timestamp descending; the archived filter is the only
// store-level predicate. Any secondary ordering happens on the fetched page.
func (dbService *InfractionDBService) GetInfractions(includeArchived bool) ([]infractionTypes.Infraction, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if !includeArchived {
		filter["archived"] = false
	}

	opts := options.Find().SetSort(sortByCreatedAtDesc)
	cursor, err := dbService.collectionInfractions().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	infractions := []infractionTypes.Infraction{}
	for cursor.Next(ctx) {
		var doc infractionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		infractions = append(infractions, doc.normalize())
	}
	return infractions, cursor.Err()
}

// SaveAdminComment writes only the reviewer comment and its modification
// timestamp.
func (dbService *InfractionDBService) SaveAdminComment(id string, comments string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := dbService.collectionInfractions().UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{
			"$set": bson.M{
				"adminComments":   comments,
				"adminModifiedAt": time.Now(),
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetArchiveState writes the archived flag and its timestamp as a single
// update: the timestamp is stamped on archiving and cleared on unarchiving.
func (dbService *InfractionDBService) SetArchiveState(id string, archived bool) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	var update bson.M
	if archived {
		update = bson.M{
			"$set": bson.M{
				"archived":   true,
				"archivedAt": time.Now(),
			},
		}
	} else {
		update = bson.M{
			"$set":   bson.M{"archived": false},
			"$unset": bson.M{"archivedAt": ""},
		}
	}

	res, err := dbService.collectionInfractions().UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
