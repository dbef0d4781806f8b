package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, lvl := range []int{3, 1, 7} {
		if _, err := store.SaveRun(RunEntry{GameID: "vetovoima", Level: lvl, Seed: 42}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunEntry{GameID: "vetovoima_cycle", Level: 12}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("vetovoima", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted by level descending
	want := []int{7, 3, 1}
	for i, r := range runs {
		if r.Level != want[i] {
			t.Errorf("run %d reached level %d, want %d", i, r.Level, want[i])
		}
		if r.Seed != 42 || r.GameID != "vetovoima" {
			t.Errorf("run %d = %+v", i, r)
		}
	}

	cycle, err := store.TopRuns("vetovoima_cycle", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(cycle) != 1 {
		t.Errorf("Expected 1 cycle run, got %d", len(cycle))
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		id, _ := store.SaveRun(RunEntry{GameID: "test", Level: 1 + i%2})
		ids = append(ids, id)
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Levels 2 were played second and fourth; the earlier one ranks first.
	if runs[0].ID != ids[1] || runs[1].ID != ids[3] || runs[2].ID != ids[0] {
		t.Errorf("unexpected ranking: %+v", runs)
	}
}

func TestStoreRunDuration(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{GameID: "test", Level: 2, Duration: 95*time.Second + 250*time.Millisecond})

	runs, err := store.AllRuns("test")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Duration != 95250*time.Millisecond {
		t.Errorf("AllRuns() = %+v", runs)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("created_at should be filled in")
	}
}

func TestStoreBestLevel(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestLevel("vetovoima")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best level 0 for empty game, got %d", best)
	}

	store.SaveRun(RunEntry{GameID: "vetovoima", Level: 4})
	store.SaveRun(RunEntry{GameID: "vetovoima", Level: 9})
	store.SaveRun(RunEntry{GameID: "vetovoima", Level: 6})

	best, err = store.BestLevel("vetovoima")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 9 {
		t.Errorf("Expected best level 9, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{GameID: "vetovoima", Level: 1})
	store.SaveRun(RunEntry{GameID: "vetovoima", Level: 2})
	store.SaveRun(RunEntry{GameID: "vetovoima_cycle", Level: 3})

	if err := store.ClearRuns("vetovoima"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("vetovoima", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	cycle, _ := store.TopRuns("vetovoima_cycle", 10)
	if len(cycle) != 1 {
		t.Error("Other games should not be affected by clearing")
	}
}

func TestStoreAllRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun(RunEntry{GameID: "test", Level: i + 1})
	}

	runs, err := store.AllRuns("test")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Fatalf("Expected 20 runs, got %d", len(runs))
	}
	if runs[0].Level != 20 {
		t.Errorf("most recent run should come first, got level %d", runs[0].Level)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{GameID: "vetovoima", Level: 2, Duration: time.Minute})
	store.SaveRun(RunEntry{GameID: "vetovoima", Level: 4, Duration: 2 * time.Minute})

	stats, err := store.GetGameStats("vetovoima")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.BestLevel != 4 || stats.AvgLevel != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalTime != 3*time.Minute {
		t.Errorf("total time = %v, want 3m", stats.TotalTime)
	}

	empty, err := store.GetGameStats("unknown")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["vetovoima"].BestLevel != 4 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
