package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReplay(gameID string, score int) Replay {
	return Replay{
		GameID:  gameID,
		RunSeed: 42,
		Steps:   1234,
		Score:   score,
		Lines:   score / 100,
		Level:   1,
		Journal: []byte("version: 1\nrun_seed: 42\n"),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	want := sampleReplay("tetris", 900)
	id, err := store.SaveReplay(want)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.ReplayByID(id)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if got.ID != id || got.GameID != "tetris" || got.RunSeed != 42 || got.Steps != 1234 {
		t.Errorf("unexpected metadata: %+v", got)
	}
	if got.Score != 900 || got.Lines != 9 || got.Level != 1 {
		t.Errorf("unexpected outcome: score=%d lines=%d level=%d", got.Score, got.Lines, got.Level)
	}
	if !bytes.Equal(got.Journal, want.Journal) {
		t.Errorf("journal = %q, want %q", got.Journal, want.Journal)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreSaveRejectsEmptyJournal(t *testing.T) {
	store := openTestStore(t)
	r := sampleReplay("tetris", 0)
	r.Journal = nil
	if _, err := store.SaveReplay(r); err == nil {
		t.Error("expected error for empty journal")
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.ReplayByID(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReplayByID(99) error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteReplay(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteReplay(99) error = %v, want ErrNotFound", err)
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveReplay(sampleReplay("tetris", i*100)); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}
	if _, err := store.SaveReplay(sampleReplay("tetris_bag", 50)); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	replays, err := store.RecentReplays("tetris", 3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 3 {
		t.Fatalf("Expected 3 replays, got %d", len(replays))
	}
	// newest first
	if replays[0].Score != 400 || replays[2].Score != 200 {
		t.Errorf("unexpected order: %d, %d, %d", replays[0].Score, replays[1].Score, replays[2].Score)
	}
	if replays[0].Journal != nil {
		t.Error("listings should not load journals")
	}

	all, err := store.RecentReplays("", 0)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 replays across games, got %d", len(all))
	}
	if all[0].GameID != "tetris_bag" {
		t.Errorf("newest replay game = %q, want tetris_bag", all[0].GameID)
	}
}

func TestStoreDeleteAndPrune(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for i := range 6 {
		id, err := store.SaveReplay(sampleReplay("tetris", i))
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	if err := store.DeleteReplay(ids[5]); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}

	n, err := store.PruneReplays(2)
	if err != nil {
		t.Fatalf("PruneReplays() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("pruned %d replays, want 3", n)
	}

	left, err := store.RecentReplays("", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(left) != 2 || left[0].ID != ids[4] || left[1].ID != ids[3] {
		t.Errorf("unexpected survivors: %+v", left)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
