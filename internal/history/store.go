// Package history keeps the most recent calculations, newest first, and
// persists them as one JSON list under a single storage key.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"
)

// StorageKey is the key holding the JSON-encoded entry list.
const StorageKey = "calculatorHistory"

// Store is the in-memory history backed by a Storage. It is safe for
// concurrent use.
type Store struct {
	storage Storage
	now     func() time.Time
	limit   int

	mu      sync.Mutex
	entries []Entry
}

// Option customises a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLimit overrides Limit.
func WithLimit(n int) Option {
	return func(s *Store) { s.limit = n }
}

// NewStore returns an empty store; call Load to restore persisted entries.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		now:     time.Now,
		limit:   Limit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory entries with the persisted list. A missing key
// leaves the store empty.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	var entries []Entry
	if ok {
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode history: %w", err)
		}
	}
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Record stamps a new entry, prepends it, drops whatever exceeds the limit
// and persists the resulting list. The in-memory list only changes once the
// write succeeds.
func (s *Store) Record(ctx context.Context, expression, result string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := NewEntry(expression, result, s.now())
	next := Prepend(s.entries, entry, s.limit)

	if err := s.persist(ctx, next); err != nil {
		return Entry{}, err
	}
	s.entries = next
	return entry, nil
}

// Entries returns a copy of the current list, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Select returns the result stored in entry i, which the caller reuses as
// its next expression.
func (s *Store) Select(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.entries) {
		return "", fmt.Errorf("history entry %d out of range (have %d)", i, len(s.entries))
	}
	return s.entries[i].Result, nil
}

// Clear forgets every entry, in memory and in storage.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.entries = nil
	return nil
}

func (s *Store) persist(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
