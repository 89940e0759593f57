package calendar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lfmartins/calendario/internal/model"
	"github.com/lfmartins/calendario/internal/store/file"
)

func newTestRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	return New(file.New(path)), path
}

func TestCreateEventAssignsSequentialIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ev, err := repo.CreateEvent(ctx, model.Event{"title": "e"})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
		if ev.ID() != i {
			t.Errorf("event %d got id %d", i, ev.ID())
		}
	}

	eventos, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(eventos) != 3 {
		t.Fatalf("len = %d, want 3", len(eventos))
	}
}

func TestCreateEventOverwritesCallerID(t *testing.T) {
	repo, _ := newTestRepo(t)

	ev, err := repo.CreateEvent(context.Background(), model.Event{"id": 99, "title": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if ev.ID() != 1 {
		t.Errorf("id = %d, want 1 (caller id must be ignored)", ev.ID())
	}
}

func TestCreateEventAfterDeleteNeverReusesID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.CreateEvent(ctx, model.Event{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.DeleteEvent(ctx, 2); err != nil {
		t.Fatal(err)
	}

	ev, err := repo.CreateEvent(ctx, model.Event{})
	if err != nil {
		t.Fatal(err)
	}
	if ev.ID() != 4 {
		t.Errorf("id = %d, want 4 (max+1, deleted id 2 not reused)", ev.ID())
	}
}

func TestUpdateEventReplacesWholesaleAndPinsID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateEvent(ctx, model.Event{"title": "Kickoff", "date": "2026-01-05"}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.UpdateEvent(ctx, 1, model.Event{"id": 42, "title": "Kickoff v2"})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if got.ID() != 1 {
		t.Errorf("id = %d, want 1 (pinned to path id)", got.ID())
	}
	if got["title"] != "Kickoff v2" {
		t.Errorf("title = %v", got["title"])
	}
	// Replacement, not merge: date must be gone.
	if _, ok := got["date"]; ok {
		t.Errorf("date survived a wholesale replacement: %v", got)
	}

	eventos, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(eventos) != 1 || eventos[0]["title"] != "Kickoff v2" {
		t.Fatalf("eventos = %+v", eventos)
	}
}

func TestUpdateEventNotFoundLeavesFileUntouched(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateEvent(ctx, model.Event{"title": "only"}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = repo.UpdateEvent(ctx, 999, model.Event{"title": "nope"})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("file changed after a failed update")
	}
}

func TestDeleteEventIsIdempotent(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateEvent(ctx, model.Event{"title": "keep"}); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteEvent(ctx, 999); err != nil {
		t.Fatalf("DeleteEvent(999): %v", err)
	}

	eventos, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(eventos) != 1 || eventos[0].ID() != 1 {
		t.Fatalf("eventos = %+v, want only id 1", eventos)
	}

	// The write happens even when nothing was removed.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("backing file missing after no-op delete: %v", err)
	}
}

func TestSetConfigReplacesWholesale(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetConfig(ctx, map[string]any{"a": "1", "b": "2"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetConfig(ctx, map[string]any{"c": "3"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := repo.Config(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg) != 1 || cfg["c"] != "3" {
		t.Errorf("config = %v, want only {c:3} (no merge)", cfg)
	}
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.CreateEvent(ctx, model.Event{}); err != nil {
				t.Errorf("CreateEvent: %v", err)
			}
		}()
	}
	wg.Wait()

	eventos, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool, n)
	for _, e := range eventos {
		if seen[e.ID()] {
			t.Fatalf("duplicate id %d", e.ID())
		}
		seen[e.ID()] = true
	}
	if len(seen) != n {
		t.Errorf("got %d distinct ids, want %d", len(seen), n)
	}
}
