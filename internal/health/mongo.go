package health

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/restaurant-reviews/internal/config"
)

// mongoAuthFailed is the server's AuthenticationFailed error code.
const mongoAuthFailed = 18

// MongoProbe connects with MONGODB_URL and asks the server for its build info.
type MongoProbe struct {
	Config config.MongoProbeConfig
}

func (MongoProbe) Name() string { return ResourceMongo }

func (p MongoProbe) Check(ctx context.Context) error {
	if p.Config.URL == "" {
		return fmt.Errorf("%w: MONGODB_URL is empty", ErrMisconfigured)
	}
	opts := options.Client().ApplyURI(p.Config.URL)
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMisconfigured, err)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Err()
	if err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == mongoAuthFailed {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return err
	}
	return nil
}
