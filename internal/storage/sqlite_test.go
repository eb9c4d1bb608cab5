package storage

import (
	"errors"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parent were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		Seed:       42,
		TickRate:   60,
		Ticks:      300,
		Score:      3,
		EndReason:  "collision",
		ConfigYAML: []byte("physics:\n  gravity: 12.8\n"),
		Lifts:      []uint64{4, 20, 41, 77},
	}

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a UUID id, got %q", id)
	}

	got, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if got.Seed != 42 || got.TickRate != 60 || got.Ticks != 300 || got.Score != 3 {
		t.Errorf("run fields mismatch: %+v", got)
	}
	if got.EndReason != "collision" {
		t.Errorf("EndReason = %q", got.EndReason)
	}
	if string(got.ConfigYAML) != string(run.ConfigYAML) {
		t.Errorf("ConfigYAML = %q", got.ConfigYAML)
	}
	if len(got.Lifts) != len(run.Lifts) {
		t.Fatalf("expected %d lifts, got %d", len(run.Lifts), len(got.Lifts))
	}
	for i := range run.Lifts {
		if got.Lifts[i] != run.Lifts[i] {
			t.Errorf("lift %d = %d, want %d", i, got.Lifts[i], run.Lifts[i])
		}
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if got.Duration() != 5*time.Second {
		t.Errorf("Duration() = %v, want 5s", got.Duration())
	}
}

func TestStoreRunByPrefix(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "abcdef01-0000-0000-0000-000000000000", TickRate: 60, EndReason: "collision", ConfigYAML: []byte("{}")})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{ID: "abcdef02-0000-0000-0000-000000000000", TickRate: 60, EndReason: "collision", ConfigYAML: []byte("{}")}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.Run("abcdef01")
	if err != nil {
		t.Fatalf("Run(prefix) failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("Run(prefix) = %s, want %s", got.ID, id)
	}
	if got.ShortID() != "abcdef01" {
		t.Errorf("ShortID() = %s", got.ShortID())
	}

	if _, err := store.Run("abcdef"); !errors.Is(err, ErrAmbiguousRun) {
		t.Errorf("expected ErrAmbiguousRun, got %v", err)
	}
	if _, err := store.Run("ffff"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := store.Run(""); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("empty id should not match, got %v", err)
	}
}

func TestStoreRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := store.SaveRun(Run{
			Seed:       int64(i),
			TickRate:   60,
			Score:      i,
			EndReason:  "collision",
			ConfigYAML: []byte("{}"),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.Runs(3)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	// Newest first
	for i, want := range []int64{4, 3, 2} {
		if runs[i].Seed != want {
			t.Errorf("runs[%d].Seed = %d, want %d", i, runs[i].Seed, want)
		}
		if runs[i].Lifts != nil {
			t.Error("Runs() should not load lifts")
		}
	}

	n, err := store.CountRuns()
	if err != nil || n != 5 {
		t.Errorf("CountRuns() = %d, %v", n, err)
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{TickRate: 60, EndReason: "abandoned", ConfigYAML: []byte("{}"), Lifts: []uint64{1, 2}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("deleted run should be gone, got %v", err)
	}
	if err := store.DeleteRun(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}

	lifts, err := store.lifts(id)
	if err != nil || len(lifts) != 0 {
		t.Errorf("lifts should be deleted with the run, got %v, %v", lifts, err)
	}
}

func TestStoreDuplicateID(t *testing.T) {
	store := openTestStore(t)
	run := Run{ID: "dup", TickRate: 60, EndReason: "collision", ConfigYAML: []byte("{}"), Lifts: []uint64{3}}

	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run); err == nil {
		t.Error("saving the same id twice should fail")
	}

	got, err := store.Run("dup")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(got.Lifts) != 1 {
		t.Errorf("failed save must not leave extra lifts, got %v", got.Lifts)
	}
}
