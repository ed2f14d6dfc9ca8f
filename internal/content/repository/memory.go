package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ladypi89/website/backend/go-services/internal/content"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryRepo is an in-memory Repository used by unit tests and by local runs
// without a database. Insertion order stands in for natural order.
type MemoryRepo[T Record] struct {
	mu    sync.RWMutex
	order []string
	store map[string]T
}

func NewMemoryRepo[T Record]() *MemoryRepo[T] {
	return &MemoryRepo[T]{store: make(map[string]T)}
}

func (m *MemoryRepo[T]) Get(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return &d, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo[T]) First(_ context.Context) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return nil, ErrNotFound
	}
	d := m.store[m.order[0]]
	return &d, nil
}

func (m *MemoryRepo[T]) List(_ context.Context, opts ListOptions) ([]T, error) {
	m.mu.RLock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.store[id])
	}
	m.mu.RUnlock()
	if opts.NewestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedTime().After(out[j].CreatedTime())
		})
	}
	if n := opts.limit(); int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *MemoryRepo[T]) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.order)), nil
}

func (m *MemoryRepo[T]) Insert(_ context.Context, docs ...T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		if _, ok := m.store[d.RecordID()]; ok {
			return fmt.Errorf("insert %s: duplicate id", d.RecordID())
		}
	}
	for _, d := range docs {
		m.store[d.RecordID()] = d
		m.order = append(m.order, d.RecordID())
	}
	return nil
}

func (m *MemoryRepo[T]) InsertIfAbsent(_ context.Context, docs ...T) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, d := range docs {
		if _, ok := m.store[d.RecordID()]; ok {
			continue
		}
		m.store[d.RecordID()] = d
		m.order = append(m.order, d.RecordID())
		n++
	}
	return n, nil
}

func (m *MemoryRepo[T]) Update(_ context.Context, id string, ch content.Changes) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if ch.Empty() {
		return &d, nil
	}
	next, err := applyChanges(d, ch)
	if err != nil {
		return nil, err
	}
	m.store[id] = next
	return &next, nil
}

func (m *MemoryRepo[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepo[T]) EnsureOne(_ context.Context, _ string, def T) (*T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.order) > 0 {
		d := m.store[m.order[0]]
		return &d, false, nil
	}
	m.store[def.RecordID()] = def
	m.order = append(m.order, def.RecordID())
	return &def, true, nil
}

// applyChanges round-trips doc through BSON so the merge uses the same field
// names as the Mongo repository.
func applyChanges[T any](doc T, ch content.Changes) (T, error) {
	var out T
	raw, err := bson.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("encode: %w", err)
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return out, fmt.Errorf("decode: %w", err)
	}
	for k, v := range ch.Set {
		fields[k] = v
	}
	for _, k := range ch.Unset {
		delete(fields, k)
	}
	raw, err = bson.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("encode merged: %w", err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode merged: %w", err)
	}
	return out, nil
}

// MemoryLedger is the in-memory SeedLedger.
type MemoryLedger struct {
	mu     sync.Mutex
	marked map[string]time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{marked: make(map[string]time.Time)}
}

func (l *MemoryLedger) Seeded(_ context.Context, name string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.marked[name]
	return ok, nil
}

func (l *MemoryLedger) MarkSeeded(_ context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.marked[name]; !ok {
		l.marked[name] = time.Now().UTC()
	}
	return nil
}
