package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Put(ctx, "submarine.leaderboard", `[{"name":"a","score":1,"date":"2024-01-01"}]`); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, ok, _ := store.Get(ctx, "submarine.leaderboard"); !ok {
		t.Error("value should survive reopening the database")
	}
}

func TestStoreKV(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, expected absent without error", ok, err)
	}

	if err := store.Put(ctx, "k", "v1"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put(ctx, "k", "v2"); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	v, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = ok=%v err=%v", ok, err)
	}
	if v != "v2" {
		t.Errorf("Get(k) = %q, expected the latest value v2", v)
	}
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	err := store.Update(ctx, "k", func(old string, ok bool) (string, error) {
		if ok || old != "" {
			t.Errorf("Update(missing) saw ok=%v old=%q, expected absent", ok, old)
		}
		return "v1", nil
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	err = store.Update(ctx, "k", func(old string, ok bool) (string, error) {
		if !ok || old != "v1" {
			t.Errorf("Update(k) saw ok=%v old=%q, expected v1", ok, old)
		}
		return old + "+v2", nil
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	boom := errors.New("boom")
	err = store.Update(ctx, "k", func(string, bool) (string, error) {
		return "lost", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, expected the callback error", err)
	}

	if v, _, _ := store.Get(ctx, "k"); v != "v1+v2" {
		t.Errorf("Get(k) = %q, expected v1+v2 with the failed update rolled back", v)
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(ctx, Run{Variant: "submarine", Score: score, Ticks: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(ctx, Run{Variant: "submarine_classic", Score: 500}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns(ctx, "submarine", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	expected := []int{200, 100, 50}
	for i, want := range expected {
		if runs[i].Score != want {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, want)
		}
	}

	limited, err := store.TopRuns(ctx, "submarine", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestStoreRunIDs(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	id, err := store.SaveRun(ctx, Run{Variant: "submarine", Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated run ID %q is not a UUID: %v", id, err)
	}

	fixed := uuid.NewString()
	got, err := store.SaveRun(ctx, Run{ID: fixed, Variant: "submarine", Score: 2})
	if err != nil {
		t.Fatalf("SaveRun() with ID failed: %v", err)
	}
	if got != fixed {
		t.Errorf("SaveRun() returned %q, expected caller ID %q", got, fixed)
	}

	if _, err := store.SaveRun(ctx, Run{ID: fixed, Variant: "submarine", Score: 3}); err == nil {
		t.Error("duplicate run ID should be rejected")
	}
}

func TestStoreClearRuns(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	store.SaveRun(ctx, Run{Variant: "submarine", Score: 100})
	store.SaveRun(ctx, Run{Variant: "submarine_classic", Score: 300})

	if err := store.ClearRuns(ctx, "submarine"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.TopRuns(ctx, "submarine", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns(ctx, "submarine_classic", 10); len(runs) != 1 {
		t.Error("other variants should not be affected by clearing")
	}
}

func TestStoreStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	empty, err := store.VariantStats(ctx, "submarine")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for an unplayed variant should be empty, got %+v", empty)
	}

	store.SaveRun(ctx, Run{Variant: "submarine", Score: 100, Ticks: 100, Bonuses: 0})
	store.SaveRun(ctx, Run{Variant: "submarine", Score: 300, Ticks: 200, Bonuses: 1})
	store.SaveRun(ctx, Run{Variant: "submarine_classic", Score: 50, Ticks: 51})

	st, err := store.VariantStats(ctx, "submarine")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if st.Runs != 2 || st.HighScore != 300 || st.AvgScore != 200 {
		t.Errorf("stats = %+v, expected 2 runs, high 300, avg 200", st)
	}
	if st.TotalTicks != 300 || st.Bonuses != 1 {
		t.Errorf("stats = %+v, expected 300 ticks and 1 bonus", st)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.AllStats(ctx)
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 variants, got %d", len(all))
	}
	if all["submarine_classic"].HighScore != 50 {
		t.Errorf("classic high score = %d, expected 50", all["submarine_classic"].HighScore)
	}
}
