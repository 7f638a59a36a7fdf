package infraction

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vvaraldi/Infraction-Orford/pkg/db"
)

const (
	COLLECTION_NAME_INFRACTIONS = "infractions"
)

type InfractionDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewInfractionDBService(configs db.DBConfig) (*InfractionDBService, error) {
	dbClient, err := db.Connect(configs)
	if err != nil {
		return nil, err
	}

	dbService := &InfractionDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := dbService.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for infraction DB", slog.String("error", err.Error()))
		}
	}

	return dbService, nil
}

func (dbService *InfractionDBService) getDBName() string {
	return dbService.DBNamePrefix + "infraction_db"
}

func (dbService *InfractionDBService) collectionInfractions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_INFRACTIONS)
}

func (dbService *InfractionDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

// The store only guarantees ordering on createdAt (optionally combined with
// one filter field), which is why listing always fetches by createdAt
// descending and any other projection is sorted on the fetched page.
func (dbService *InfractionDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for infraction DB")
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "patrolId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "archived", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	}
	_, err := dbService.collectionInfractions().Indexes().CreateMany(ctx, indexes)
	return err
}
