package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/wrenlabs/wren/internal/biz/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(tweetID string, actions []string) *domain.ExecutionRecord {
	tweet := domain.Tweet{
		ID:             tweetID,
		AuthorUsername: "someone",
		Text:           "tweet " + tweetID,
		CreatedAt:      time.Now(),
	}
	return domain.NewExecutionRecord(tweet, "agent-1", actions)
}

func TestStore_SaveAndHasRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("42", []string{"like", "reply"})

	exists, err := store.HasRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("HasRecord: %v", err)
	}
	if exists {
		t.Fatal("record should not exist yet")
	}

	if err := store.SaveRecord(ctx, rec); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}

	exists, err = store.HasRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("HasRecord: %v", err)
	}
	if !exists {
		t.Fatal("record should exist after save")
	}
}

func TestStore_SaveRecordFirstWriteWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testRecord("42", []string{"like"})
	second := testRecord("42", []string{"retweet"})

	if err := store.SaveRecord(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveRecord(ctx, second); err != nil {
		t.Fatalf("duplicate save should be a no-op, got %v", err)
	}

	records, err := store.RecentRecords(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if len(records[0].Actions) != 1 || records[0].Actions[0] != "like" {
		t.Errorf("first write must win, got actions %v", records[0].Actions)
	}
}

func TestStore_RecentRecordsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("42", []string{"like", "quote"})
	if err := store.SaveRecord(ctx, rec); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}

	records, err := store.RecentRecords(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.TweetID != "42" || got.AgentID != "agent-1" || got.Source != domain.SourceTwitter {
		t.Errorf("unexpected record: %+v", got)
	}
	if len(got.Actions) != 2 || got.Actions[0] != "like" || got.Actions[1] != "quote" {
		t.Errorf("actions round trip failed: %v", got.Actions)
	}
	if got.URL == "" {
		t.Error("URL should survive the round trip")
	}
}

func TestStore_EmptyActionsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveRecord(ctx, testRecord("42", nil)); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}

	records, err := store.RecentRecords(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRecords: %v", err)
	}
	if len(records[0].Actions) != 0 {
		t.Errorf("declined record should come back with no actions, got %v", records[0].Actions)
	}
}

func TestStore_CountRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		if err := store.SaveRecord(ctx, testRecord(id, []string{"like"})); err != nil {
			t.Fatalf("SaveRecord: %v", err)
		}
	}

	count, err := store.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}

func TestStore_KVCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.Get(ctx, "since_id:q")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Fatalf("missing key should return empty, got %q", got)
	}

	if err := store.Set(ctx, "since_id:q", "100"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "since_id:q", "200"); err != nil {
		t.Fatalf("Set upsert: %v", err)
	}

	got, _ = store.Get(ctx, "since_id:q")
	if got != "200" {
		t.Errorf("expected upserted value, got %q", got)
	}

	if err := store.Delete(ctx, "since_id:q"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ = store.Get(ctx, "since_id:q")
	if got != "" {
		t.Errorf("deleted key should return empty, got %q", got)
	}
}
