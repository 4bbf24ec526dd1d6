package history_test

import (
	"context"
	"testing"

	"whisperlite/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBeginAndFinishSuccess(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.Begin(ctx, "/media/clip.wav", "small", "cpu", "int8")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if run.ID == "" || run.Status != history.StatusRunning {
		t.Fatalf("unexpected run: %+v", run)
	}

	paths := []string{"/out/clip.txt", "/out/clip.srt"}
	if err := store.FinishSuccess(ctx, run.ID, "en", 0.98, 125.5, paths, false); err != nil {
		t.Fatalf("FinishSuccess returned error: %v", err)
	}

	got, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Status != history.StatusSucceeded {
		t.Fatalf("status = %q", got.Status)
	}
	if got.Language != "en" || got.DurationSeconds != 125.5 {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if len(got.OutputPaths) != 2 || got.OutputPaths[1] != "/out/clip.srt" {
		t.Fatalf("output paths = %v", got.OutputPaths)
	}
	if got.FallbackUsed {
		t.Fatal("fallback flag should be false")
	}
	if got.FinishedAt.IsZero() {
		t.Fatal("finished_at not recorded")
	}
}

func TestFinishFailure(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.Begin(ctx, "/media/clip.wav", "small", "cpu", "int8")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if err := store.FinishFailure(ctx, run.ID, "engine exploded"); err != nil {
		t.Fatalf("FinishFailure returned error: %v", err)
	}

	got, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Status != history.StatusFailed || got.ErrorMessage != "engine exploded" {
		t.Fatalf("unexpected run: %+v", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Begin(ctx, "/media/a.wav", "small", "cpu", "int8")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	second, err := store.Begin(ctx, "/media/b.wav", "small", "cpu", "int8")
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("runs not newest first: %v", []string{runs[0].ID, runs[1].ID})
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Fatalf("limit not applied: %+v", limited)
	}
}
