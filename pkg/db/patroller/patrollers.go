package patroller

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

// ErrNotFound is returned when a referenced account id no longer exists.
var ErrNotFound = errors.New("patroller not found")

var sortByNameAsc = bson.D{
	primitive.E{Key: "name", Value: 1},
}

// CreatePatroller writes a profile record under the principal id assigned by
// the identity provider; this system never generates the id itself.
func (dbService *PatrollerDBService) CreatePatroller(
	newPatroller *patrollerTypes.Patroller,
) (*patrollerTypes.Patroller, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now()
	newPatroller.CreatedAt = now
	newPatroller.ModifiedAt = now

	_, err := dbService.collectionPatrollers().InsertOne(ctx, newPatroller)
	if err != nil {
		return nil, err
	}
	return newPatroller, nil
}

func (dbService *PatrollerDBService) GetPatrollerByID(id string) (*patrollerTypes.Patroller, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var profile patrollerTypes.Patroller
	err := dbService.collectionPatrollers().FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdatePatrollerProfile updates the administrator-mutable profile fields.
// Email is immutable after creation and is deliberately absent here.
func (dbService *PatrollerDBService) UpdatePatrollerProfile(
	id string,
	name string,
	role string,
	status string,
	allowInfraction bool,
	allowInspection bool,
) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionPatrollers().UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{
				"name":            name,
				"role":            role,
				"status":          status,
				"allowInfraction": allowInfraction,
				"allowInspection": allowInspection,
				"modifiedAt":      time.Now(),
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

// DeletePatroller removes only the profile record. The identity-provider
// credential stays in place, see the credentials collection.
func (dbService *PatrollerDBService) DeletePatroller(id string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionPatrollers().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (dbService *PatrollerDBService) GetAllPatrollers() ([]patrollerTypes.Patroller, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(sortByNameAsc)
	cursor, err := dbService.collectionPatrollers().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	patrollers := []patrollerTypes.Patroller{}
	for cursor.Next(ctx) {
		var profile patrollerTypes.Patroller
		if err := cursor.Decode(&profile); err != nil {
			return nil, err
		}
		patrollers = append(patrollers, profile)
	}
	return patrollers, cursor.Err()
}
