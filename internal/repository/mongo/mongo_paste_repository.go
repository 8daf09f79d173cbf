// Package mongo provides a MongoDB-backed implementation of the paste repository.
// Expiry is enforced natively by a TTL index on expireAt.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/repository"
	"github.com/roguepikachu/pastebin/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding paste documents.
const CollectionName = "pastes"

// PasteRepository implements repository.PasteRepository using MongoDB.
type PasteRepository struct {
	collection *mongo.Collection
}

// NewPasteRepository creates a repository on the pastes collection of db.
func NewPasteRepository(db *mongo.Database) *PasteRepository {
	return &PasteRepository{collection: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique identifier index and the TTL index that
// lets the server drop documents once expireAt has passed.
func (r *PasteRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pasteId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("pasteId_unique"),
		},
		{
			Keys:    bson.D{{Key: "expireAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expireAt_ttl"),
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	logger.Info(ctx, "mongo indexes ensured")
	return nil
}

// Insert adds a new paste. A taken identifier yields repository.ErrDuplicateID.
func (r *PasteRepository) Insert(ctx context.Context, p domain.Paste) error {
	_, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert paste: %w", err)
	}
	return nil
}

// FindByID retrieves a paste by identifier. The TTL monitor runs about once a
// minute, so expired documents may still be returned here.
func (r *PasteRepository) FindByID(ctx context.Context, id string) (domain.Paste, error) {
	var p domain.Paste
	err := r.collection.FindOne(ctx, bson.M{"pasteId": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Paste{}, repository.ErrNotFound
		}
		return domain.Paste{}, fmt.Errorf("find paste: %w", err)
	}
	return p, nil
}

// DeleteExpired removes documents whose expireAt is at or before now without
// waiting for the TTL monitor.
func (r *PasteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"expireAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("delete expired pastes: %w", err)
	}
	return res.DeletedCount, nil
}

var (
	_ repository.PasteRepository = (*PasteRepository)(nil)
	_ repository.ExpiredPurger   = (*PasteRepository)(nil)
)
