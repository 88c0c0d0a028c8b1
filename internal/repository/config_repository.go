package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brincapark/reservations-api/internal/database"
	"github.com/brincapark/reservations-api/internal/model"
)

// ConfigRepo manages the singleton pricing configuration document.  The
// document is created lazily with hard-coded defaults on first access and
// is never deleted.  Concurrent updates use last-write-wins semantics on
// whichever fields were supplied; there is no optimistic concurrency
// token.
type ConfigRepo struct {
	col *mongo.Collection
}

// NewConfigRepo returns a ConfigRepo bound to the given database.
func NewConfigRepo(db *mongo.Database) *ConfigRepo {
	return &ConfigRepo{col: db.Collection(database.ConfigCollection)}
}

// Get returns the configuration singleton, inserting the defaults first if
// no document exists yet.  Two racing first accesses are resolved by the
// unique index on the singleton marker: the loser of the insert race
// re-reads the winner's document.
func (r *ConfigRepo) Get(ctx context.Context) (*model.Config, error) {
	cfg, err := r.find(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	def := model.DefaultConfig()
	def.UpdatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, def); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.find(ctx)
		}
		return nil, err
	}
	return &def, nil
}

// Update fetches (or creates) the singleton, merges the supplied fields
// over the current values and persists the result.  The merge is shallow
// per top-level key: a supplied Tickets or Packages object replaces the
// stored one wholesale instead of being merged key by key.
func (r *ConfigRepo) Update(ctx context.Context, upd model.ConfigUpdate) (*model.Config, error) {
	cfg, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	merged := Merge(*cfg, upd)
	merged.UpdatedAt = time.Now().UTC()

	if _, err := r.col.ReplaceOne(ctx, bson.M{"isSingleton": true}, merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (r *ConfigRepo) find(ctx context.Context) (*model.Config, error) {
	var cfg model.Config
	if err := r.col.FindOne(ctx, bson.M{"isSingleton": true}).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies a partial update over a configuration value field by
// field.  It is exported separately from Update so the merge semantics can
// be exercised without a live database.
func Merge(cfg model.Config, upd model.ConfigUpdate) model.Config {
	if upd.Currency != nil {
		cfg.Currency = *upd.Currency
	}
	if upd.ExchangeRate != nil {
		cfg.ExchangeRate = *upd.ExchangeRate
	}
	if upd.Tickets != nil {
		cfg.Tickets = *upd.Tickets
	}
	if upd.Packages != nil {
		cfg.Packages = *upd.Packages
	}
	return cfg
}
