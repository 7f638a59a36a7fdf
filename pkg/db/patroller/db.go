package patroller

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vvaraldi/Infraction-Orford/pkg/db"
)

const (
	COLLECTION_NAME_PATROLLERS  = "patrollers"
	COLLECTION_NAME_CREDENTIALS = "credentials"
)

type PatrollerDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewPatrollerDBService(configs db.DBConfig) (*PatrollerDBService, error) {
	dbClient, err := db.Connect(configs)
	if err != nil {
		return nil, err
	}

	dbService := &PatrollerDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := dbService.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for patroller DB", slog.String("error", err.Error()))
		}
	}

	return dbService, nil
}

func (dbService *PatrollerDBService) getDBName() string {
	return dbService.DBNamePrefix + "user_db"
}

func (dbService *PatrollerDBService) collectionPatrollers() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_PATROLLERS)
}

func (dbService *PatrollerDBService) collectionCredentials() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_CREDENTIALS)
}

func (dbService *PatrollerDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *PatrollerDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for patroller DB")
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionPatrollers().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	)
	if err != nil {
		slog.Error("Error creating index for name in user_db.patrollers", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionCredentials().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating unique index for email in user_db.credentials", slog.String("error", err.Error()))
	}

	return nil
}
