package store

import (
	"context"
	"testing"
	"time"

	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
)

func storedDeck(id string, created time.Time) *deck.Deck {
	return &deck.Deck{
		ID:     id,
		Title:  "Deck " + id,
		Canvas: deck.Size{Width: 960, Height: 540},
		Slides: []deck.Slide{
			{Number: 1, Template: "bullet", SourceSectionID: "s1"},
		},
		CreatedAt: created,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d := storedDeck("d1", time.Now().UTC())
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != d.Title || got.SlideCount() != 1 {
		t.Errorf("stored deck changed: %+v", got)
	}

	// Mutating the returned deck must not affect the stored copy.
	got.Slides[0].Template = "mutated"
	again, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Slides[0].Template != "bullet" {
		t.Error("stored deck aliased with returned copy")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "absent")
	if !errors.Is(err, errors.ErrCodeDeckNotFound) {
		t.Errorf("error = %v, want DECK_NOT_FOUND", err)
	}
}

func TestMemoryStoreSaveRequiresID(t *testing.T) {
	s := NewMemoryStore()
	err := s.Save(context.Background(), &deck.Deck{Title: "no id"})
	if err == nil {
		t.Error("Save accepted a deck without ID")
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		if err := s.Save(ctx, storedDeck(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "new" || all[2].ID != "old" {
		t.Errorf("List order = %v, want newest first", all)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d summaries", len(limited))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, storedDeck("d1", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "d1"); !errors.Is(err, errors.ErrCodeDeckNotFound) {
		t.Errorf("second Delete = %v, want DECK_NOT_FOUND", err)
	}
}
