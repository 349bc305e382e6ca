package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
)

func newTestCache(t *testing.T) *StatsCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Connect(ctx, addr, "", 0)
	if err != nil {
		t.Skipf("skipping redis integration tests: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return NewStatsCache(client, WithStatsKey("test:hotel:rooms:stats:"+t.Name()), WithStatsTTL(time.Minute))
}

func TestStatsCache(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.InvalidateStats(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, gen, ok, err := cache.GetStats(ctx)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := domain.RoomStats{Total: 12, AveragePrice: 87.25}
	if err := cache.SetStats(ctx, gen, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, gotGen, ok, err := cache.GetStats(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != want || gotGen != gen {
		t.Fatalf("expected %+v at generation %d, got %+v at %d", want, gen, got, gotGen)
	}

	if err := cache.InvalidateStats(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, _, ok, _ := cache.GetStats(ctx); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestStatsCache_IgnoresSupersededGeneration(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_, stale, _, err := cache.GetStats(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := cache.InvalidateStats(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := cache.SetStats(ctx, stale, domain.RoomStats{Total: 1, AveragePrice: 50}); err != nil {
		t.Fatalf("set: %v", err)
	}

	_, gen, ok, err := cache.GetStats(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected stats stored for generation %d to be ignored", stale)
	}
	if gen != stale+1 {
		t.Fatalf("expected generation %d, got %d", stale+1, gen)
	}
}

func TestNewStatsCache_Defaults(t *testing.T) {
	c := NewStatsCache(nil, WithStatsKey(""), WithStatsTTL(0))
	if c.key != defaultStatsKey || c.ttl != defaultStatsTTL {
		t.Fatalf("expected defaults, got key=%q ttl=%v", c.key, c.ttl)
	}
}
