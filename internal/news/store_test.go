package news_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/news"
)

func newTestStore() (*news.Store, *news.InMemoryRepository) {
	repo := news.NewInMemoryRepository()
	store := news.NewStore(news.StoreConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})
	return store, repo
}

func testItem(id string, ts time.Time) *news.Item {
	return &news.Item{
		ID:        id,
		Title:     "title " + id,
		Body:      "body " + id,
		Timestamp: ts,
		Source:    "telegram",
		Emoji:     news.DefaultEmoji,
	}
}

func TestStore_UpsertOrdersNewestFirst(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 3; i++ {
		item := testItem(fmt.Sprintf("item-%d", i), base.Add(time.Duration(i)*time.Second))
		if err := store.Upsert(ctx, item); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	items := store.List()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "item-2" {
		t.Errorf("expected most recent upsert first, got %q", items[0].ID)
	}
	if items[2].ID != "item-0" {
		t.Errorf("expected oldest upsert last, got %q", items[2].ID)
	}
}

func TestStore_BoundNeverExceeded(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < news.MaxItems+10; i++ {
		item := testItem(fmt.Sprintf("item-%d", i), base.Add(time.Duration(i)*time.Second))
		if err := store.Upsert(ctx, item); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if got := store.Count(); got > news.MaxItems {
			t.Fatalf("mirror exceeded bound: %d items after upsert %d", got, i)
		}
	}

	items := store.List()
	if len(items) != news.MaxItems {
		t.Fatalf("expected %d items, got %d", news.MaxItems, len(items))
	}
	if items[0].ID != fmt.Sprintf("item-%d", news.MaxItems+9) {
		t.Errorf("expected newest item first, got %q", items[0].ID)
	}

	// Durable storage must converge to the same bound.
	if repo.Size() != news.MaxItems {
		t.Errorf("expected durable store to hold %d items, got %d", news.MaxItems, repo.Size())
	}
}

func TestStore_UpsertReplacesInPlace(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 3; i++ {
		if err := store.Upsert(ctx, testItem(fmt.Sprintf("item-%d", i), base)); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	replacement := testItem("item-1", base.Add(time.Minute))
	replacement.Title = "replaced"
	if err := store.Upsert(ctx, replacement); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	items := store.List()
	if len(items) != 3 {
		t.Fatalf("expected size unchanged at 3, got %d", len(items))
	}
	if items[1].ID != "item-1" || items[1].Title != "replaced" {
		t.Errorf("expected item-1 replaced in place, got %q (%q)", items[1].ID, items[1].Title)
	}
	if items[0].ID != "item-2" || items[2].ID != "item-0" {
		t.Errorf("expected relative order of other items unchanged, got %q, %q", items[0].ID, items[2].ID)
	}
}

func TestStore_UpdatePartialFields(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	original := testItem("item-1", time.Now())
	if err := store.Upsert(ctx, original); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	newTitle := "updated title"
	updated, err := store.Update(ctx, "item-1", news.UpdateFields{Title: &newTitle})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("expected title %q, got %q", newTitle, updated.Title)
	}
	if updated.Body != original.Body {
		t.Errorf("expected body unchanged, got %q", updated.Body)
	}
	if updated.Emoji != original.Emoji {
		t.Errorf("expected emoji unchanged, got %q", updated.Emoji)
	}

	// The mirror must reflect the update on the next read.
	items := store.List()
	if items[0].Title != newTitle {
		t.Errorf("expected mirror to reflect update, got %q", items[0].Title)
	}
}

func TestStore_UpdateNotFound(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, testItem("item-1", time.Now())); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	title := "nope"
	_, err := store.Update(ctx, "missing", news.UpdateFields{Title: &title})
	if !errors.Is(err, news.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	if store.Count() != 1 {
		t.Errorf("expected store unmodified, got %d items", store.Count())
	}
}

func TestStore_Delete(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, testItem("item-1", time.Now())); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := store.Delete(ctx, "item-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if store.Count() != 0 {
		t.Errorf("expected empty mirror, got %d items", store.Count())
	}
	if repo.Size() != 0 {
		t.Errorf("expected empty durable store, got %d items", repo.Size())
	}

	if err := store.Delete(ctx, "item-1"); !errors.Is(err, news.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound on second delete, got %v", err)
	}
}

func TestStore_HydrateLoadsMostRecent(t *testing.T) {
	repo := news.NewInMemoryRepository()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < news.MaxItems+5; i++ {
		_, err := repo.Upsert(ctx, testItem(fmt.Sprintf("item-%d", i), base.Add(time.Duration(i)*time.Second)))
		if err != nil {
			t.Fatalf("seeding repo failed: %v", err)
		}
	}

	store := news.NewStore(news.StoreConfig{Repository: repo, Logger: zerolog.Nop()})
	if err := store.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}

	items := store.List()
	if len(items) != news.MaxItems {
		t.Fatalf("expected %d items after hydration, got %d", news.MaxItems, len(items))
	}
	if items[0].ID != fmt.Sprintf("item-%d", news.MaxItems+4) {
		t.Errorf("expected newest item first after hydration, got %q", items[0].ID)
	}
	if repo.Size() != news.MaxItems {
		t.Errorf("expected durable overflow pruned to %d, got %d", news.MaxItems, repo.Size())
	}
}
