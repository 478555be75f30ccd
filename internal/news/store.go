package news

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Store is the single writer for the feed. It serializes all mutations,
// keeps an in-memory mirror of the most recent MaxItems entries ordered
// newest-first by insertion, and enforces the same bound on the durable
// repository. Reads are served from the mirror.
type Store struct {
	repo   Repository
	logger zerolog.Logger

	mu     sync.RWMutex
	mirror []*Item
}

// StoreConfig holds configuration for the store.
type StoreConfig struct {
	Repository Repository
	Logger     zerolog.Logger
}

// NewStore creates a new feed store.
func NewStore(cfg StoreConfig) *Store {
	return &Store{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}
}

// Hydrate loads the mirror from durable storage. It must be called before
// the store serves any read. Items come back newest-first by timestamp;
// from then on the mirror order is insertion order.
func (s *Store) Hydrate(ctx context.Context) error {
	items, err := s.repo.ListRecent(ctx, MaxItems)
	if err != nil {
		return fmt.Errorf("hydrating feed mirror: %w", err)
	}

	// Trim any overflow left behind by a previous process.
	if err := s.repo.DeleteOlderThan(ctx, MaxItems); err != nil {
		return fmt.Errorf("pruning feed overflow: %w", err)
	}

	s.mu.Lock()
	s.mirror = items
	s.mu.Unlock()

	s.logger.Info().Int("items", len(items)).Msg("feed mirror hydrated")
	return nil
}

// Upsert writes the item durably, then refreshes the mirror: an existing ID
// is replaced in place without changing its position, a new ID is prepended.
// The mirror is truncated to MaxItems and the evicted items are removed from
// durable storage as well.
func (s *Store) Upsert(ctx context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.repo.Upsert(ctx, item)
	if err != nil {
		return fmt.Errorf("upserting news item: %w", err)
	}

	if created {
		s.mirror = append([]*Item{copyItem(item)}, s.mirror...)
	} else if idx := s.indexOfLocked(item.ID); idx >= 0 {
		s.mirror[idx] = copyItem(item)
	} else {
		// Present durably but not mirrored (evicted earlier); treat as new.
		s.mirror = append([]*Item{copyItem(item)}, s.mirror...)
	}

	if len(s.mirror) > MaxItems {
		evicted := s.mirror[MaxItems:]
		s.mirror = s.mirror[:MaxItems]
		for _, old := range evicted {
			if err := s.repo.Delete(ctx, old.ID); err != nil {
				s.logger.Warn().Err(err).Str("id", old.ID).Msg("failed to evict news item")
			}
		}
	}

	return nil
}

// List returns the mirror's current order, newest-first by insertion.
func (s *Store) List() []*Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*Item, len(s.mirror))
	for i, item := range s.mirror {
		items[i] = copyItem(item)
	}
	return items
}

// Update overwrites only the supplied fields on an existing item and returns
// the updated record. Returns ErrItemNotFound if the ID is absent.
func (s *Store) Update(ctx context.Context, id string, fields UpdateFields) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	if idx := s.indexOfLocked(id); idx >= 0 {
		s.mirror[idx] = copyItem(item)
	}

	return item, nil
}

// Delete removes an item from durable storage and the mirror.
// Returns ErrItemNotFound if the ID is absent.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if idx := s.indexOfLocked(id); idx >= 0 {
		s.mirror = append(s.mirror[:idx], s.mirror[idx+1:]...)
	}

	return nil
}

// Count returns the number of mirrored items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mirror)
}

// indexOfLocked returns the mirror index of the given ID, or -1.
// Callers must hold the lock.
func (s *Store) indexOfLocked(id string) int {
	for i, item := range s.mirror {
		if item.ID == id {
			return i
		}
	}
	return -1
}
