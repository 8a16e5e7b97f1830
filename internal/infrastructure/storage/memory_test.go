package storage

import (
	"context"
	"testing"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

func sample(id string) *domain.Session {
	return &domain.Session{
		ID:   id,
		Name: "The Sunken Crypt",
		Characters: []domain.Character{
			{ID: "char_elara", Name: "Elara", Kind: domain.KindPC, CurrentHP: 10, MaxHP: 10},
		},
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, sample("sess_1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "sess_1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "The Sunken Crypt" || len(loaded.Characters) != 1 {
		t.Errorf("Bad round-trip: %+v", loaded)
	}
}

func TestMemoryStore_LoadNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load(context.Background(), "missing")
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_CopyIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.Save(ctx, sample("sess_1"))

	first, _ := store.Load(ctx, "sess_1")
	first.Characters[0].CurrentHP = 1 // мутация без Save

	second, _ := store.Load(ctx, "sess_1")
	if second.Characters[0].CurrentHP != 10 {
		t.Error("Unsaved mutation leaked into the store")
	}
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.Save(ctx, sample("sess_1"))

	updated := sample("sess_1")
	updated.Name = "Renamed"
	if err := store.Save(ctx, updated); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, _ := store.Load(ctx, "sess_1")
	if loaded.Name != "Renamed" {
		t.Errorf("Expected last write to win, got %q", loaded.Name)
	}
}

func TestMemoryStore_SaveRequiresID(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save(context.Background(), &domain.Session{}); err == nil {
		t.Error("Expected error for empty session ID")
	}
}

func TestMemoryStore_ListSorted(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.Save(ctx, sample("sess_b"))
	store.Save(ctx, sample("sess_a"))

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "sess_a" || sessions[1].ID != "sess_b" {
		t.Errorf("Expected sorted [sess_a sess_b], got %v", sessions)
	}
}
