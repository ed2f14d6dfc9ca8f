package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ladypi89/website/backend/go-services/internal/content"
	"github.com/ladypi89/website/backend/go-services/internal/content/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// Well-known store keys for the singleton documents.
const (
	biographyKey       = "biography"
	streamingStatusKey = "streaming_status"
	seedMarkers        = "seed_markers"
)

// Service defines the site content operations used by the handler layer.
type Service interface {
	CreateStatusCheck(ctx context.Context, in content.StatusCheckCreate) (*content.StatusCheck, error)
	ListStatusChecks(ctx context.Context) ([]content.StatusCheck, error)

	GetBiography(ctx context.Context) (*content.Biography, error)
	UpdateBiography(ctx context.Context, u content.BiographyUpdate) (*content.Biography, error)

	ListPartnerships(ctx context.Context) ([]content.Partnership, error)
	CreatePartnership(ctx context.Context, in content.PartnershipCreate) (*content.Partnership, error)
	UpdatePartnership(ctx context.Context, id string, u content.PartnershipUpdate) (*content.Partnership, error)
	DeletePartnership(ctx context.Context, id string) error

	ListSocialMedia(ctx context.Context) ([]content.SocialMedia, error)
	CreateSocialMedia(ctx context.Context, in content.SocialMediaCreate) (*content.SocialMedia, error)
	UpdateSocialMedia(ctx context.Context, id string, u content.SocialMediaUpdate) (*content.SocialMedia, error)
	DeleteSocialMedia(ctx context.Context, id string) error

	CreateContact(ctx context.Context, in content.ContactFormCreate) (*content.ContactForm, error)
	ListContacts(ctx context.Context) ([]content.ContactForm, error)
	SetContactStatus(ctx context.Context, id string, status content.ContactStatus) error

	GetStreamingStatus(ctx context.Context) (*content.StreamingStatus, error)
	SetStreamingStatus(ctx context.Context, status content.StreamState, game string) (*content.StreamingStatus, error)

	// Bootstrap seeds every singleton and default collection. It is safe to
	// call on every start.
	Bootstrap(ctx context.Context) error
}

// Stores groups the repositories the service runs on.
type Stores struct {
	StatusChecks    repository.Repository[content.StatusCheck]
	Biography       repository.Repository[content.Biography]
	Partnerships    repository.Repository[content.Partnership]
	SocialMedia     repository.Repository[content.SocialMedia]
	Contacts        repository.Repository[content.ContactForm]
	StreamingStatus repository.Repository[content.StreamingStatus]
	Seeds           repository.SeedLedger
}

// NewMemoryStores returns empty in-memory stores.
func NewMemoryStores() Stores {
	return Stores{
		StatusChecks:    repository.NewMemoryRepo[content.StatusCheck](),
		Biography:       repository.NewMemoryRepo[content.Biography](),
		Partnerships:    repository.NewMemoryRepo[content.Partnership](),
		SocialMedia:     repository.NewMemoryRepo[content.SocialMedia](),
		Contacts:        repository.NewMemoryRepo[content.ContactForm](),
		StreamingStatus: repository.NewMemoryRepo[content.StreamingStatus](),
		Seeds:           repository.NewMemoryLedger(),
	}
}

// NewMongoStores returns stores backed by collections of db. Indexes are
// created on the way.
func NewMongoStores(ctx context.Context, db *mongo.Database) Stores {
	return Stores{
		StatusChecks:    repository.NewMongoRepo[content.StatusCheck](ctx, db.Collection(content.StatusChecksCollection), "timestamp"),
		Biography:       repository.NewMongoRepo[content.Biography](ctx, db.Collection(content.BiographyCollection), ""),
		Partnerships:    repository.NewMongoRepo[content.Partnership](ctx, db.Collection(content.PartnershipsCollection), "created_at"),
		SocialMedia:     repository.NewMongoRepo[content.SocialMedia](ctx, db.Collection(content.SocialMediaCollection), "created_at"),
		Contacts:        repository.NewMongoRepo[content.ContactForm](ctx, db.Collection(content.ContactFormsCollection), "created_at"),
		StreamingStatus: repository.NewMongoRepo[content.StreamingStatus](ctx, db.Collection(content.StreamingStatusCollection), ""),
		Seeds:           repository.NewMongoLedger(db.Collection(seedMarkers)),
	}
}

// Option customizes a service.
type Option func(*contentService)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *contentService) { s.now = now }
}

// NewMemoryService returns a Service backed by in-memory repositories.
func NewMemoryService(opts ...Option) Service {
	return New(NewMemoryStores(), opts...)
}

// NewMongoService returns a Service backed by a MongoDB database.
// Caller is responsible for creating the client and disconnecting it.
func NewMongoService(ctx context.Context, db *mongo.Database, opts ...Option) Service {
	return New(NewMongoStores(ctx, db), opts...)
}

func New(st Stores, opts ...Option) Service {
	s := &contentService{st: st, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(s)
	}
	return s
}

type contentService struct {
	st    Stores
	now   func() time.Time
	newID func() string
}

// timestamp returns the current time at store precision.
func (s *contentService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func notFound(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func (s *contentService) CreateStatusCheck(ctx context.Context, in content.StatusCheckCreate) (*content.StatusCheck, error) {
	sc := content.StatusCheck{ID: s.newID(), ClientName: in.ClientName, Timestamp: s.timestamp()}
	if err := s.st.StatusChecks.Insert(ctx, sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *contentService) ListStatusChecks(ctx context.Context) ([]content.StatusCheck, error) {
	return s.st.StatusChecks.List(ctx, repository.ListOptions{})
}

func (s *contentService) GetBiography(ctx context.Context) (*content.Biography, error) {
	return ensureSingleton(ctx, s.st.Biography, content.BiographyCollection, biographyKey,
		content.DefaultBiography(s.newID(), s.timestamp()))
}

func (s *contentService) UpdateBiography(ctx context.Context, u content.BiographyUpdate) (*content.Biography, error) {
	ch, err := u.Changes()
	if err != nil {
		return nil, err
	}
	cur, err := s.st.Biography.First(ctx)
	if err != nil {
		return nil, notFound("biography", err)
	}
	// updated_at must move forward even when two updates land in the same
	// millisecond.
	ts := s.timestamp()
	if !ts.After(cur.UpdatedAt) {
		ts = cur.UpdatedAt.Add(time.Millisecond)
	}
	ch.Set["updated_at"] = ts
	b, err := s.st.Biography.Update(ctx, cur.ID, ch)
	if err != nil {
		return nil, notFound("biography", err)
	}
	return b, nil
}

func (s *contentService) ListPartnerships(ctx context.Context) ([]content.Partnership, error) {
	return listWithDefaults(ctx, s.st.Partnerships, s.st.Seeds, content.PartnershipsCollection, func(newID func() string) []content.Partnership {
		return content.DefaultPartnerships(newID, s.timestamp())
	})
}

func (s *contentService) CreatePartnership(ctx context.Context, in content.PartnershipCreate) (*content.Partnership, error) {
	p := content.Partnership{
		ID:        s.newID(),
		Name:      in.Name,
		Role:      in.Role,
		Logo:      in.Logo,
		Handle:    in.Handle,
		CreatedAt: s.timestamp(),
	}
	if in.URL != "" {
		p.URL = &in.URL
	}
	if err := s.st.Partnerships.Insert(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *contentService) UpdatePartnership(ctx context.Context, id string, u content.PartnershipUpdate) (*content.Partnership, error) {
	ch, err := u.Changes()
	if err != nil {
		return nil, err
	}
	p, err := s.st.Partnerships.Update(ctx, id, ch)
	if err != nil {
		return nil, notFound("partnership "+id, err)
	}
	return p, nil
}

func (s *contentService) DeletePartnership(ctx context.Context, id string) error {
	return notFound("partnership "+id, s.st.Partnerships.Delete(ctx, id))
}

func (s *contentService) ListSocialMedia(ctx context.Context) ([]content.SocialMedia, error) {
	return listWithDefaults(ctx, s.st.SocialMedia, s.st.Seeds, content.SocialMediaCollection, func(newID func() string) []content.SocialMedia {
		return content.DefaultSocialMedia(newID, s.timestamp())
	})
}

func (s *contentService) CreateSocialMedia(ctx context.Context, in content.SocialMediaCreate) (*content.SocialMedia, error) {
	sm := content.SocialMedia{
		ID:        s.newID(),
		Platform:  in.Platform,
		URL:       in.URL,
		Icon:      in.Icon,
		Color:     in.Color,
		CreatedAt: s.timestamp(),
	}
	if err := s.st.SocialMedia.Insert(ctx, sm); err != nil {
		return nil, err
	}
	return &sm, nil
}

func (s *contentService) UpdateSocialMedia(ctx context.Context, id string, u content.SocialMediaUpdate) (*content.SocialMedia, error) {
	ch, err := u.Changes()
	if err != nil {
		return nil, err
	}
	sm, err := s.st.SocialMedia.Update(ctx, id, ch)
	if err != nil {
		return nil, notFound("social media "+id, err)
	}
	return sm, nil
}

func (s *contentService) DeleteSocialMedia(ctx context.Context, id string) error {
	return notFound("social media "+id, s.st.SocialMedia.Delete(ctx, id))
}

func (s *contentService) CreateContact(ctx context.Context, in content.ContactFormCreate) (*content.ContactForm, error) {
	c := content.ContactForm{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.timestamp(),
		Status:    content.ContactNew,
	}
	if err := s.st.Contacts.Insert(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *contentService) ListContacts(ctx context.Context) ([]content.ContactForm, error) {
	return s.st.Contacts.List(ctx, repository.ListOptions{NewestFirst: true})
}

func (s *contentService) SetContactStatus(ctx context.Context, id string, status content.ContactStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	_, err := s.st.Contacts.Update(ctx, id, content.Changes{Set: bson.M{"status": status}})
	return notFound("contact "+id, err)
}

func (s *contentService) GetStreamingStatus(ctx context.Context) (*content.StreamingStatus, error) {
	return ensureSingleton(ctx, s.st.StreamingStatus, content.StreamingStatusCollection, streamingStatusKey,
		content.DefaultStreamingStatus(s.newID(), s.timestamp()))
}

// SetStreamingStatus does not seed: it reports ErrNotFound until the status
// has been read or bootstrapped once.
func (s *contentService) SetStreamingStatus(ctx context.Context, status content.StreamState, game string) (*content.StreamingStatus, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if game == "" {
		game = content.DefaultGame
	}
	cur, err := s.st.StreamingStatus.First(ctx)
	if err != nil {
		return nil, notFound("streaming status", err)
	}
	ch := content.Changes{Set: bson.M{"status": status, "game": game, "updated_at": s.timestamp()}}
	st, err := s.st.StreamingStatus.Update(ctx, cur.ID, ch)
	if err != nil {
		return nil, notFound("streaming status", err)
	}
	return st, nil
}
