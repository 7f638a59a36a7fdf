package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Readiness poll while waiting for the store to accept connections at
// startup. Fixed interval, fixed attempt cap, then a hard failure. This is
// the only automatic retry in the whole system.
const (
	readinessAttempts = 10
	readinessInterval = 2 * time.Second
)

// ErrBackendUnavailable is returned when the document store did not become
// ready within the bounded startup wait.
var ErrBackendUnavailable = errors.New("document store unavailable")

// Connect opens a client for the given config and waits for the store to
// become ready by pinging it with a bounded retry poll.
func Connect(configs DBConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	if err := waitForReady(dbClient, configs.Timeout); err != nil {
		return nil, err
	}
	return dbClient, nil
}

func waitForReady(client *mongo.Client, timeout int) error {
	var lastErr error
	for attempt := 1; attempt <= readinessAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
		lastErr = client.Ping(ctx, nil)
		cancel()
		if lastErr == nil {
			return nil
		}
		slog.Warn("document store not ready yet", slog.Int("attempt", attempt), slog.String("error", lastErr.Error()))
		if attempt < readinessAttempts {
			time.Sleep(readinessInterval)
		}
	}
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, lastErr)
}
