package score

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSubmitAndTop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, e := range []struct {
		name  string
		score int
	}{
		{"alpha", 1200},
		{"beta", 4500},
		{"gamma", 300},
	} {
		if err := s.Submit(ctx, e.name, e.score); err != nil {
			t.Fatalf("submit %s: %v", e.name, err)
		}
	}

	top, err := s.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Name != "beta" || top[1].Name != "alpha" || top[2].Name != "gamma" {
		t.Fatalf("unexpected order: %v", top)
	}
}

func TestTopLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if err := s.Submit(ctx, "runner", i*100); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	top, err := s.Top(ctx, 5)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(top))
	}
	if top[0].Score != 1900 {
		t.Fatalf("best score = %d, want 1900", top[0].Score)
	}
}

func TestSubmitBlankNameBecomesAnonymous(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Submit(ctx, "   ", 42); err != nil {
		t.Fatalf("submit: %v", err)
	}

	top, _ := s.Top(ctx, 1)
	if len(top) != 1 || top[0].Name != "anonymous" {
		t.Fatalf("expected anonymous entry, got %v", top)
	}
}

func TestSubmitRejectsNegativeScore(t *testing.T) {
	s := openTestStore(t)

	if err := s.Submit(context.Background(), "cheat", -1); err == nil {
		t.Fatal("expected error for negative score")
	}
}

func TestOpenIsIdempotentOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.Submit(context.Background(), "keeper", 777); err != nil {
		t.Fatalf("submit: %v", err)
	}
	s1.Close()

	// Reopening must replay no migrations and keep the data.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	top, err := s2.Top(context.Background(), 1)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].Name != "keeper" || top[0].Score != 777 {
		t.Fatalf("expected persisted entry, got %v", top)
	}
}
