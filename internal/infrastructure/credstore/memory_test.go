package credstore

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok := s.Read(ctx); ok {
		t.Fatalf("expected empty store")
	}
	_ = s.Save(ctx, "a")
	_ = s.Save(ctx, "b")
	if got, ok := s.Read(ctx); !ok || got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	_ = s.Clear(ctx)
	_ = s.Clear(ctx)
	if _, ok := s.Read(ctx); ok {
		t.Fatalf("expected cleared store")
	}
}
