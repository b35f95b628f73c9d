package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/adapters/redis"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ports"
	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunPositionStoreContract(t, store)
}

func TestRedisStore_TTLExpiresSamples(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	if err := store.Put(ctx, domain.Mars, 2451545.0, domain.Position{Longitude: 42}); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, domain.Mars, 2451545.0)
	if err != domain.ErrPositionNotCached {
		t.Fatalf("expected ErrPositionNotCached after TTL, got %v", err)
	}
}
