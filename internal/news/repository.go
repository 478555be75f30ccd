package news

import "context"

// Repository defines the interface for durable news item persistence.
type Repository interface {
	// Upsert writes the item, replacing any existing record with the same ID.
	// Returns true if a new row was created, false if an existing one was
	// replaced.
	Upsert(ctx context.Context, item *Item) (created bool, err error)

	// ListRecent retrieves the most recent items ordered newest-first by
	// timestamp, up to limit.
	ListRecent(ctx context.Context, limit int) ([]*Item, error)

	// Update overwrites the supplied fields on an existing item and returns
	// the updated record. Returns ErrItemNotFound if the ID is absent.
	Update(ctx context.Context, id string, fields UpdateFields) (*Item, error)

	// Delete removes an item. Returns ErrItemNotFound if the ID is absent.
	Delete(ctx context.Context, id string) error

	// DeleteOlderThan removes every item except the most recent keep items
	// by timestamp. Used to enforce the feed bound on the durable table.
	DeleteOlderThan(ctx context.Context, keep int) error
}
