package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ladypi89/website/backend/go-services/internal/content/repository"
	"github.com/ladypi89/website/backend/go-services/pkg/logger"
	"github.com/ladypi89/website/backend/go-services/pkg/metrics"
)

// ensureSingleton returns the singleton document, inserting def on first use.
func ensureSingleton[T repository.Record](ctx context.Context, repo repository.Repository[T], collection, key string, def T) (*T, error) {
	doc, created, err := repo.EnsureOne(ctx, key, def)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Infof("seeded default %s", collection)
		metrics.SeededDocuments.WithLabelValues(collection).Inc()
	}
	return doc, nil
}

// listWithDefaults lists the collection and, if it is empty and has never
// been seeded, stores the defaults first. Defaults carry deterministic ids, so
// concurrent first reads insert each default once and every caller sees the
// full set. The ledger is marked only after the defaults are stored; a failed
// insert is retried by the next read.
func listWithDefaults[T repository.Record](ctx context.Context, repo repository.Repository[T], seeds repository.SeedLedger, collection string, defaults func(newID func() string) []T) ([]T, error) {
	list, err := repo.List(ctx, repository.ListOptions{})
	if err != nil || len(list) > 0 {
		return list, err
	}
	seeded, err := seeds.Seeded(ctx, collection)
	if err != nil {
		return nil, err
	}
	if seeded {
		logger.Debugf("%s is empty but was seeded before; not reseeding", collection)
		return list, nil
	}
	if err := seedCollection(ctx, repo, seeds, collection, defaults); err != nil {
		return nil, err
	}
	return repo.List(ctx, repository.ListOptions{})
}

func seedCollection[T repository.Record](ctx context.Context, repo repository.Repository[T], seeds repository.SeedLedger, collection string, defaults func(newID func() string) []T) error {
	docs := defaults(seedIDs(collection))
	n, err := repo.InsertIfAbsent(ctx, docs...)
	if err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	if err := seeds.MarkSeeded(ctx, collection); err != nil {
		return err
	}
	if n > 0 {
		logger.Infof("seeded %d default %s", n, collection)
		metrics.SeededDocuments.WithLabelValues(collection).Add(float64(n))
	} else {
		logger.Debugf("defaults for %s already stored by another caller", collection)
	}
	return nil
}

// seedIDs returns stable ids for the i-th default of a collection, the same
// on every replica.
func seedIDs(collection string) func() string {
	i := 0
	return func() string {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("ladypi89-site/%s/%d", collection, i)))
		i++
		return id.String()
	}
}

func (s *contentService) Bootstrap(ctx context.Context) error {
	if _, err := s.GetBiography(ctx); err != nil {
		return fmt.Errorf("bootstrap biography: %w", err)
	}
	if _, err := s.GetStreamingStatus(ctx); err != nil {
		return fmt.Errorf("bootstrap streaming status: %w", err)
	}
	if _, err := s.ListPartnerships(ctx); err != nil {
		return fmt.Errorf("bootstrap partnerships: %w", err)
	}
	if _, err := s.ListSocialMedia(ctx); err != nil {
		return fmt.Errorf("bootstrap social media: %w", err)
	}
	return nil
}
