// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	schemestore "github.com/sayamjn/SHG/internal/app/store/schemes"
	"github.com/sayamjn/SHG/internal/app/store/sessions"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes every collection depends on: the unique
// case-folded group code, the member listing indexes, the scheme text
// index, and the session TTL index.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	groups := groupstore.New(db)
	members := memberstore.New(db, groups, logger)
	schemes := schemestore.New(db)
	sess := sessions.New(db, appCfg.SessionTTL)

	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"groups", groups.EnsureIndexes},
		{"users", members.EnsureIndexes},
		{"schemes", schemes.EnsureIndexes},
		{"sessions", sess.EnsureIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			logger.Error("index creation failed", zap.String("collection", e.name), zap.Error(err))
			return fmt.Errorf("ensure %s indexes: %w", e.name, err)
		}
	}
	logger.Info("indexes ensured")
	return nil
}
