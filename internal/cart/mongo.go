package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

type snapshotDocument struct {
	Namespace string            `bson:"namespace"`
	Lines     []domain.CartLine `bson:"lines"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func NewMongoStorage(db *mongo.Database, namespace string) *MongoStorage {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &MongoStorage{
		collection: db.Collection("cart_snapshots"),
		namespace:  namespace,
	}
}

// MongoStorage persists the snapshot as one document per namespace,
// upserted on every save.
type MongoStorage struct {
	collection *mongo.Collection
	namespace  string
}

func (m *MongoStorage) Save(ctx context.Context, lines []domain.CartLine) error {
	doc := snapshotDocument{
		Namespace: m.namespace,
		Lines:     lines,
		UpdatedAt: time.Now(),
	}

	filter := bson.M{"namespace": m.namespace}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart snapshot: %w", err)
	}
	return nil
}

func (m *MongoStorage) Load(ctx context.Context) ([]domain.CartLine, error) {
	var doc snapshotDocument

	filter := bson.M{"namespace": m.namespace}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	return doc.Lines, nil
}

func (m *MongoStorage) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "namespace", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := m.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
