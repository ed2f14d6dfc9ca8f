package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ladypi89/website/backend/go-services/internal/content"
)

var (
	ErrNotFound = errors.New("record not found")
)

// MaxList bounds every list query.
const MaxList = 1000

// Record is implemented by every stored entity. Records are keyed by their
// own "id" field, never by the store's internal _id.
type Record interface {
	RecordID() string
	CreatedTime() time.Time
}

// ListOptions controls List. A zero Limit means MaxList.
type ListOptions struct {
	Limit       int64
	NewestFirst bool
}

func (o ListOptions) limit() int64 {
	if o.Limit <= 0 || o.Limit > MaxList {
		return MaxList
	}
	return o.Limit
}

// Repository is a collection-scoped document store for one entity type.
type Repository[T Record] interface {
	Get(ctx context.Context, id string) (*T, error)
	// First returns whichever document the store yields first.
	First(ctx context.Context) (*T, error)
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, docs ...T) error
	// InsertIfAbsent inserts the docs whose id is not stored yet and reports
	// how many were written. Concurrent calls with the same ids are safe.
	InsertIfAbsent(ctx context.Context, docs ...T) (int, error)
	// Update merges ch into the document with the given id and returns the
	// stored result.
	Update(ctx context.Context, id string, ch content.Changes) (*T, error)
	Delete(ctx context.Context, id string) error
	// EnsureOne returns the first document, inserting def under the
	// well-known key when the collection is empty. The bool reports whether
	// def was inserted by this call.
	EnsureOne(ctx context.Context, key string, def T) (*T, bool, error)
}

// SeedLedger records which collections have already received default data.
// A collection is marked only after its defaults are stored.
type SeedLedger interface {
	Seeded(ctx context.Context, name string) (bool, error)
	// MarkSeeded is idempotent.
	MarkSeeded(ctx context.Context, name string) error
}
