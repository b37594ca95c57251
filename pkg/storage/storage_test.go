package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bubbletreemap/pkg/graph"
)

func testLayout() graph.Layout {
	return graph.Layout{
		Width:  100,
		Height: 80,
		Nodes: []graph.Node{
			{ID: 0, Parent: -1, Name: "root", X: 50, Y: 40, R: 30},
			{ID: 1, Parent: 0, Name: "a", Depth: 1, X: 40, Y: 40, R: 10, Value: 10, Leaf: true, Color: "#1f77b4"},
		},
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord(testLayout(), "abc", time.Hour)
	if rec.ID == "" {
		t.Error("expected an id")
	}
	if rec.IsExpired() {
		t.Error("fresh record should not be expired")
	}
	if forever := NewRecord(testLayout(), "abc", 0); !forever.ExpiresAt.IsZero() {
		t.Error("zero ttl should never expire")
	}
	if a, b := NewRecord(testLayout(), "", 0), NewRecord(testLayout(), "", 0); a.ID == b.ID {
		t.Error("ids should be unique")
	}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			rec := NewRecord(testLayout(), "hash", time.Hour)
			if err := s.Set(ctx, rec); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			got, err := s.Get(ctx, rec.ID)
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if got == nil {
				t.Fatal("Get() returned nil for a stored record")
			}
			if diff := cmp.Diff(rec.Layout, got.Layout); diff != "" {
				t.Errorf("layout mismatch (-want +got):\n%s", diff)
			}
			if got.HierarchyHash != "hash" {
				t.Errorf("hierarchy hash = %q", got.HierarchyHash)
			}

			if err := s.Delete(ctx, rec.ID); err != nil {
				t.Fatalf("Delete() error: %v", err)
			}
			if got, _ := s.Get(ctx, rec.ID); got != nil {
				t.Error("record still present after Delete")
			}
			if err := s.Delete(ctx, rec.ID); err != nil {
				t.Errorf("second Delete() error: %v", err)
			}
		})
	}
}

func TestStoreMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"6f1c3f4e-1d2b-4c1a-9a57-0b9d7d1f2e3a", "../../etc/passwd"} {
				got, err := s.Get(ctx, id)
				if err != nil || got != nil {
					t.Errorf("Get(%q) = %v, %v, want nil, nil", id, got, err)
				}
			}
		})
	}
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			rec := NewRecord(testLayout(), "", time.Hour)
			rec.ExpiresAt = time.Now().Add(-time.Minute)
			if err := s.Set(ctx, rec); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if got, _ := s.Get(ctx, rec.ID); got != nil {
				t.Error("expired record should not be returned")
			}
			if err := s.Cleanup(ctx); err != nil {
				t.Fatalf("Cleanup() error: %v", err)
			}
		})
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	live := NewRecord(testLayout(), "", time.Hour)
	dead := NewRecord(testLayout(), "", time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	s.Set(ctx, live)
	s.Set(ctx, dead)

	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestFileStoreCleanupRemovesFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	dead := NewRecord(testLayout(), "", time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	if err := s.Set(ctx, dead); err != nil {
		t.Fatal(err)
	}
	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, dead.ID+".json")); !os.IsNotExist(err) {
		t.Errorf("expired record file still exists: %v", err)
	}
}

func TestFileStoreRejectsBadID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(context.Background(), &Record{ID: "../x"}); err == nil {
		t.Error("expected an error for a non-uuid id")
	}
}
