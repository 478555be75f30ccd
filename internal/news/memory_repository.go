package news

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Item
}

// NewInMemoryRepository creates a new in-memory news repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string]*Item),
	}
}

// Upsert writes the item, replacing any existing record with the same ID.
func (r *InMemoryRepository) Upsert(_ context.Context, item *Item) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[item.ID]
	r.items[item.ID] = copyItem(item)
	return !exists, nil
}

// ListRecent retrieves the most recent items ordered newest-first by timestamp.
func (r *InMemoryRepository) ListRecent(_ context.Context, limit int) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = MaxItems
	}

	items := make([]*Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, copyItem(item))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	if len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}

// Update overwrites the supplied fields on an existing item.
func (r *InMemoryRepository) Update(_ context.Context, id string, fields UpdateFields) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}

	fields.Apply(item)
	return copyItem(item), nil
}

// Delete removes an item.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}

	delete(r.items, id)
	return nil
}

// DeleteOlderThan removes every item except the most recent keep by timestamp.
func (r *InMemoryRepository) DeleteOlderThan(ctx context.Context, keep int) error {
	recent, err := r.ListRecent(ctx, keep)
	if err != nil {
		return err
	}

	keepIDs := make(map[string]struct{}, len(recent))
	for _, item := range recent {
		keepIDs[item.ID] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.items {
		if _, ok := keepIDs[id]; !ok {
			delete(r.items, id)
		}
	}
	return nil
}

// Size returns the number of stored items.
func (r *InMemoryRepository) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// copyItem creates a copy of an item.
func copyItem(item *Item) *Item {
	if item == nil {
		return nil
	}
	itemCopy := *item
	return &itemCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
