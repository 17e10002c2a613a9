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

func saveRun(t *testing.T, store *Store, scenario string, ticks, transfers uint64) int64 {
	t.Helper()
	id, err := store.SaveRun(Run{
		Scenario:  scenario,
		Width:     80,
		Height:    22,
		Agents:    88,
		Seed:      42,
		Ticks:     ticks,
		Transfers: transfers,
		Duration:  1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
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

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Scenario: "classic", Ticks: 10}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns("classic", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	first := saveRun(t, store, "classic", 100, 4)
	second := saveRun(t, store, "classic", 300, 10)
	saveRun(t, store, "duel", 50, 1)

	runs, err := store.RecentRuns("classic", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("RecentRuns order = [%d %d], expected [%d %d]", runs[0].ID, runs[1].ID, second, first)
	}

	r := runs[0]
	if r.Scenario != "classic" || r.Width != 80 || r.Height != 22 || r.Agents != 88 || r.Seed != 42 {
		t.Errorf("Run fields not round-tripped: %+v", r)
	}
	if r.Ticks != 300 || r.Transfers != 10 {
		t.Errorf("Ticks/Transfers = %d/%d, expected 300/10", r.Ticks, r.Transfers)
	}
	if r.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, expected 1.5s", r.Duration)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestStoreRecentRunsAllScenarios(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "classic", 1, 0)
	saveRun(t, store, "duel", 2, 0)
	saveRun(t, store, "crowd", 3, 0)

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs across scenarios, got %d", len(runs))
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		saveRun(t, store, "classic", uint64(i), 0)
	}

	runs, err := store.RecentRuns("classic", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Ticks != 19 {
		t.Errorf("Newest run ticks = %d, expected 19", runs[0].Ticks)
	}

	// Default limit
	runs, err = store.RecentRuns("classic", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreScenarioStats(t *testing.T) {
	store := openTestStore(t)

	// Empty scenario
	stats, err := store.ScenarioStats("classic")
	if err != nil {
		t.Fatalf("ScenarioStats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.MeanTicksPerTag() != 0 {
		t.Errorf("Empty stats = %+v, expected zero", stats)
	}

	saveRun(t, store, "classic", 100, 4)
	saveRun(t, store, "classic", 300, 6)
	saveRun(t, store, "duel", 999, 1)

	stats, err = store.ScenarioStats("classic")
	if err != nil {
		t.Fatalf("ScenarioStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.TotalTicks != 400 || stats.TotalTransfers != 10 {
		t.Errorf("Totals = %d/%d, expected 400/10", stats.TotalTicks, stats.TotalTransfers)
	}
	if stats.LongestRun != 300 {
		t.Errorf("LongestRun = %d, expected 300", stats.LongestRun)
	}
	if got := stats.MeanTicksPerTag(); got != 40 {
		t.Errorf("MeanTicksPerTag() = %v, expected 40", got)
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun should be set")
	}
}

func TestStoreAllScenarioStats(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "classic", 100, 4)
	saveRun(t, store, "duel", 60, 3)
	saveRun(t, store, "duel", 40, 2)

	all, err := store.AllScenarioStats()
	if err != nil {
		t.Fatalf("AllScenarioStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(all))
	}
	duel := all["duel"]
	if duel == nil || duel.Runs != 2 || duel.TotalTicks != 100 {
		t.Errorf("duel stats = %+v, expected 2 runs / 100 ticks", duel)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "classic", 1, 0)
	saveRun(t, store, "duel", 1, 0)

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if err := store.ClearRuns(""); err == nil {
		t.Error("ClearRuns(\"\") should fail")
	}

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Scenario != "duel" {
		t.Errorf("Remaining runs = %+v, expected only duel", runs)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/runs.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created under home
	if _, err := os.Stat(filepath.Join(home, "nested", "runs.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	if got := parseTime("2024-05-06 07:08:09"); !got.Equal(want) {
		t.Errorf("parseTime(string) = %v, expected %v", got, want)
	}
	if got := parseTime(want); !got.Equal(want) {
		t.Errorf("parseTime(time) = %v, expected %v", got, want)
	}
	if got := parseTime(nil); !got.IsZero() {
		t.Errorf("parseTime(nil) = %v, expected zero", got)
	}
}
