package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

// RunPositionStoreContract verifies that a PositionStore adapter complies
// with the interface semantics. Adapter test suites call this once.
func RunPositionStoreContract(t *testing.T, store PositionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Miss", func(t *testing.T) {
		_, err := store.Get(ctx, domain.Mars, 2451545.0)
		if !errors.Is(err, domain.ErrPositionNotCached) {
			t.Fatalf("expected ErrPositionNotCached on empty store, got %v", err)
		}
	})

	t.Run("Put_Get_Roundtrip", func(t *testing.T) {
		want := domain.Position{Longitude: 123.456789, Speed: -0.1234, Retrograde: true}
		if err := store.Put(ctx, domain.Mars, 2451545.0, want); err != nil {
			t.Fatalf("unexpected put error: %v", err)
		}
		got, err := store.Get(ctx, domain.Mars, 2451545.0)
		if err != nil {
			t.Fatalf("unexpected get error: %v", err)
		}
		if got != want {
			t.Errorf("roundtrip mismatch. got %+v, want %+v", got, want)
		}
	})

	t.Run("Keys_Are_Per_Body", func(t *testing.T) {
		if err := store.Put(ctx, domain.Venus, 2451545.0, domain.Position{Longitude: 1}); err != nil {
			t.Fatalf("unexpected put error: %v", err)
		}
		got, err := store.Get(ctx, domain.Mars, 2451545.0)
		if err != nil {
			t.Fatalf("unexpected get error: %v", err)
		}
		if got.Longitude == 1 {
			t.Error("venus sample leaked into the mars key")
		}
	})

	t.Run("Overwrite_Is_Idempotent", func(t *testing.T) {
		want := domain.Position{Longitude: 200, Speed: 0.5}
		_ = store.Put(ctx, domain.Mars, 2451546.0, domain.Position{Longitude: 199})
		if err := store.Put(ctx, domain.Mars, 2451546.0, want); err != nil {
			t.Fatalf("unexpected overwrite error: %v", err)
		}
		got, err := store.Get(ctx, domain.Mars, 2451546.0)
		if err != nil {
			t.Fatalf("unexpected get error: %v", err)
		}
		if got != want {
			t.Errorf("overwrite not visible. got %+v, want %+v", got, want)
		}
	})
}
