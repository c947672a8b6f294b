package main

import (
	"context"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// App wires the store client to the HTTP handlers. It holds no mutable
// state of its own; every route is a stateless read.
type App struct {
	cfg   Config
	log   *zap.Logger
	mongo *mongo.Client
	store aggregationSource
}

func newApp(ctx context.Context, cfg Config, log *zap.Logger) (*App, error) {
	opts := options.Client().ApplyURI(cfg.Endpoint)
	if cred, ok := cosmosCredential(cfg); ok {
		opts.SetAuth(cred)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Database)

	return &App{
		cfg:   cfg,
		log:   log,
		mongo: client,
		store: newAggregations(db, cfg.Collection),
	}, nil
}

// cosmosCredential derives the driver credential from the account endpoint:
// the username is the account name (the first label of the endpoint host)
// and the password is the account key.
func cosmosCredential(cfg Config) (options.Credential, bool) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Hostname() == "" {
		return options.Credential{}, false
	}
	account, _, _ := strings.Cut(u.Hostname(), ".")
	return options.Credential{Username: account, Password: cfg.Key}, true
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
