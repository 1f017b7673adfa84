package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis store test")
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, addr, 0)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer s.Close()

	key := "test:quote:SPY"
	if err := s.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok || string(got) != "payload" {
		t.Fatalf("expected hit, got %q ok=%v err=%v", got, ok, err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Error("expected miss after delete")
	}
	if s.Ping(ctx) != "up" {
		t.Error("expected redis to be up")
	}
}
