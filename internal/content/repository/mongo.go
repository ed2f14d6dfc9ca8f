package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ladypi89/website/backend/go-services/internal/content"
	"github.com/ladypi89/website/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Documents are
// addressed by their "id" field, which carries a unique index.
type MongoRepo[T Record] struct {
	col     *mongo.Collection
	sortKey string
}

// NewMongoRepo wraps col. sortKey names the creation-time field used for
// newest-first listings.
func NewMongoRepo[T Record](ctx context.Context, col *mongo.Collection, sortKey string) *MongoRepo[T] {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if sortKey != "" {
		idx = append(idx, mongo.IndexModel{Keys: bson.D{{Key: sortKey, Value: -1}}})
	}
	if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
		logger.Warnf("create indexes on %s: %v", col.Name(), err)
	}
	return &MongoRepo[T]{col: col, sortKey: sortKey}
}

func (m *MongoRepo[T]) Get(ctx context.Context, id string) (*T, error) {
	var d T
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s/%s: %w", m.col.Name(), id, err)
	}
	return &d, nil
}

func (m *MongoRepo[T]) First(ctx context.Context) (*T, error) {
	var d T
	err := m.col.FindOne(ctx, bson.M{}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find first %s: %w", m.col.Name(), err)
	}
	return &d, nil
}

func (m *MongoRepo[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	fo := options.Find().SetLimit(opts.limit())
	if opts.NewestFirst && m.sortKey != "" {
		fo.SetSort(bson.D{{Key: m.sortKey, Value: -1}})
	}
	cur, err := m.col.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", m.col.Name(), err)
	}
	defer cur.Close(ctx)
	out := []T{}
	for cur.Next(ctx) {
		var d T
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", m.col.Name(), err)
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", m.col.Name(), err)
	}
	return out, nil
}

func (m *MongoRepo[T]) Count(ctx context.Context) (int64, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{}, options.Count().SetLimit(MaxList))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", m.col.Name(), err)
	}
	return n, nil
}

func (m *MongoRepo[T]) Insert(ctx context.Context, docs ...T) error {
	switch len(docs) {
	case 0:
		return nil
	case 1:
		if _, err := m.col.InsertOne(ctx, docs[0]); err != nil {
			return fmt.Errorf("insert %s: %w", m.col.Name(), err)
		}
		return nil
	}
	batch := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, d)
	}
	if _, err := m.col.InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("insert %s: %w", m.col.Name(), err)
	}
	return nil
}

// InsertIfAbsent relies on the unique id index: an unordered InsertMany
// writes every new document and reports the existing ones as duplicate keys.
func (m *MongoRepo[T]) InsertIfAbsent(ctx context.Context, docs ...T) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	batch := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, d)
	}
	_, err := m.col.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(docs), nil
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && bwe.WriteConcernError == nil && onlyDuplicateKeys(bwe.WriteErrors) {
		return len(docs) - len(bwe.WriteErrors), nil
	}
	return 0, fmt.Errorf("insert %s: %w", m.col.Name(), err)
}

func onlyDuplicateKeys(errs []mongo.BulkWriteError) bool {
	for _, we := range errs {
		if we.Code != 11000 {
			return false
		}
	}
	return len(errs) > 0
}

func (m *MongoRepo[T]) Update(ctx context.Context, id string, ch content.Changes) (*T, error) {
	if ch.Empty() {
		return m.Get(ctx, id)
	}
	update := bson.M{}
	if len(ch.Set) > 0 {
		update["$set"] = ch.Set
	}
	if len(ch.Unset) > 0 {
		unset := bson.M{}
		for _, k := range ch.Unset {
			unset[k] = ""
		}
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d T
	err := m.col.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s/%s: %w", m.col.Name(), id, err)
	}
	return &d, nil
}

func (m *MongoRepo[T]) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", m.col.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureOne keeps any existing document (including ones written before the
// well-known key existed) and otherwise upserts def under _id=key. Concurrent
// callers converge on the same document because _id is unique.
func (m *MongoRepo[T]) EnsureOne(ctx context.Context, key string, def T) (*T, bool, error) {
	cur, err := m.First(ctx)
	if err == nil {
		return cur, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	created := false
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$setOnInsert": def}, options.Update().SetUpsert(true))
	switch {
	case err == nil:
		created = res.UpsertedCount > 0
	case mongo.IsDuplicateKeyError(err):
		// lost the race to a concurrent upsert of the same key
	default:
		return nil, false, fmt.Errorf("ensure %s: %w", m.col.Name(), err)
	}
	var d T
	if err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&d); err != nil {
		return nil, false, fmt.Errorf("ensure %s: %w", m.col.Name(), err)
	}
	return &d, created, nil
}

// MongoLedger stores one marker document per seeded collection.
type MongoLedger struct {
	col *mongo.Collection
}

func NewMongoLedger(col *mongo.Collection) *MongoLedger {
	return &MongoLedger{col: col}
}

func (l *MongoLedger) Seeded(ctx context.Context, name string) (bool, error) {
	n, err := l.col.CountDocuments(ctx, bson.M{"_id": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("seed marker %s: %w", name, err)
	}
	return n > 0, nil
}

func (l *MongoLedger) MarkSeeded(ctx context.Context, name string) error {
	_, err := l.col.UpdateOne(ctx, bson.M{"_id": name},
		bson.M{"$setOnInsert": bson.M{"seeded_at": time.Now().UTC()}},
		options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mark seeded %s: %w", name, err)
	}
	return nil
}
