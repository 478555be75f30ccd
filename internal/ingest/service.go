// Package ingest implements the ingestion pipeline: provider message in,
// normalized item stored, fan-out triggered.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/news"
	"github.com/burksnli/kripto-haber-backend/internal/telegram"
)

// UpdateSource lists pending provider updates from an offset cursor.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error)
}

// Notifier fans a stored item out to subscribers. Implementations must
// swallow delivery failures; ingestion success is independent of them.
type Notifier interface {
	Notify(ctx context.Context, item *news.Item)
}

// Service funnels both ingress paths (webhook push and offset polling)
// through the shared normalizer into the feed store.
type Service struct {
	store    *news.Store
	source   UpdateSource
	notifier Notifier
	logger   zerolog.Logger

	// Polling cursor. Process state only: a restart resets it to zero and
	// may replay already-seen updates, which collapse onto existing rows
	// at the storage upsert.
	mu           sync.Mutex
	lastUpdateID int64
}

// ServiceConfig holds configuration for the ingestion service.
type ServiceConfig struct {
	Store    *news.Store
	Source   UpdateSource
	Notifier Notifier
	Logger   zerolog.Logger
}

// NewService creates a new ingestion service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		store:    cfg.Store,
		source:   cfg.Source,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}
}

// IngestMessage normalizes and stores a single provider message, then
// triggers fan-out. A message without text returns (nil, nil): nothing to
// ingest, and the caller must still report success so the provider does not
// retry a no-op.
func (s *Service) IngestMessage(ctx context.Context, msg *telegram.Message) (*news.Item, error) {
	item := telegram.Normalize(msg, time.Now())
	if item == nil {
		s.logger.Debug().Msg("message without text, nothing to ingest")
		return nil, nil
	}

	if err := s.store.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("storing news item: %w", err)
	}

	s.logger.Info().
		Str("item_id", item.ID).
		Str("title", item.Title).
		Msg("news item ingested")

	s.notifier.Notify(ctx, item)
	return item, nil
}

// PollResult summarizes one polling pass.
type PollResult struct {
	Processed    int
	LastUpdateID int64
}

// Poll fetches pending updates past the cursor, ingests every update that
// carries a text message in arrival order, and advances the cursor to the
// highest update identifier seen. Zero results is a non-error.
func (s *Service) Poll(ctx context.Context) (*PollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates, err := s.source.GetUpdates(ctx, s.lastUpdateID+1)
	if err != nil {
		return nil, fmt.Errorf("fetching updates: %w", err)
	}

	if len(updates) == 0 {
		s.logger.Debug().Int64("cursor", s.lastUpdateID).Msg("no new messages")
		return &PollResult{LastUpdateID: s.lastUpdateID}, nil
	}

	processed := 0
	for _, update := range updates {
		item, err := s.IngestMessage(ctx, update.Content())
		if err != nil {
			// Stop before advancing past the failed update so the next
			// poll retries it.
			return &PollResult{Processed: processed, LastUpdateID: s.lastUpdateID}, err
		}
		if item != nil {
			processed++
		}
		if update.UpdateID > s.lastUpdateID {
			s.lastUpdateID = update.UpdateID
		}
	}

	s.logger.Info().
		Int("processed", processed).
		Int64("cursor", s.lastUpdateID).
		Msg("poll completed")

	return &PollResult{Processed: processed, LastUpdateID: s.lastUpdateID}, nil
}

// LastUpdateID returns the current polling cursor.
func (s *Service) LastUpdateID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdateID
}
