package patroller

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

// ErrEmailInUse is returned when a credential already exists for the email.
var ErrEmailInUse = errors.New("email already in use")

func (dbService *PatrollerDBService) CreateCredential(
	newCredential *patrollerTypes.Credential,
) (*patrollerTypes.Credential, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	newCredential.CreatedAt = time.Now()
	_, err := dbService.collectionCredentials().InsertOne(ctx, newCredential)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return newCredential, nil
}

func (dbService *PatrollerDBService) GetCredentialByEmail(email string) (*patrollerTypes.Credential, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var credential patrollerTypes.Credential
	err := dbService.collectionCredentials().FindOne(ctx, bson.M{"email": email}).Decode(&credential)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &credential, nil
}
