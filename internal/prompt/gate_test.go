package prompt

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func gateAt(store Store, start time.Time) (*Gate, *time.Time) {
	now := start
	g := NewGate(store)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestIgnoreCooldown(t *testing.T) {
	ctx := context.Background()
	g, now := gateAt(NewMemStore(), time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	if !g.ShouldShow(ctx, "device-1") {
		t.Fatalf("fresh device must be promptable")
	}
	if err := g.Record(ctx, "device-1", ActionIgnore); err != nil {
		t.Fatalf("record: %v", err)
	}

	*now = now.Add(23 * time.Hour)
	if g.ShouldShow(ctx, "device-1") {
		t.Fatalf("ignore must suppress for 24h")
	}

	*now = now.Add(2 * time.Hour)
	if !g.ShouldShow(ctx, "device-1") {
		t.Fatalf("cooldown must expire after 24h")
	}
}

func TestLaterCooldown(t *testing.T) {
	ctx := context.Background()
	g, now := gateAt(NewMemStore(), time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	if err := g.Record(ctx, "device-1", ActionLater); err != nil {
		t.Fatalf("record: %v", err)
	}

	*now = now.Add(30 * time.Minute)
	if g.ShouldShow(ctx, "device-1") {
		t.Fatalf("later must suppress for 1h")
	}

	*now = now.Add(31 * time.Minute)
	if !g.ShouldShow(ctx, "device-1") {
		t.Fatalf("cooldown must expire after 1h")
	}
}

func TestSignupSetsNoCooldown(t *testing.T) {
	ctx := context.Background()
	g, _ := gateAt(NewMemStore(), time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	if err := g.Record(ctx, "device-1", ActionSignup); err != nil {
		t.Fatalf("record: %v", err)
	}
	if !g.ShouldShow(ctx, "device-1") {
		t.Fatalf("signup must not suppress future prompts")
	}
}

func TestUsageCountIncrementsRegardlessOfOutcome(t *testing.T) {
	ctx := context.Background()
	g, _ := gateAt(NewMemStore(), time.Now())

	for _, a := range []Action{ActionSignup, ActionLater, ActionIgnore} {
		if err := g.Record(ctx, "device-1", a); err != nil {
			t.Fatalf("record %s: %v", a, err)
		}
	}
	if got := g.UsageCount(ctx, "device-1"); got != 3 {
		t.Fatalf("expected usage count 3, got %d", got)
	}
}

func TestResetWipesState(t *testing.T) {
	ctx := context.Background()
	g, now := gateAt(NewMemStore(), time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	_ = g.Record(ctx, "device-1", ActionIgnore)
	*now = now.Add(time.Minute)
	if g.ShouldShow(ctx, "device-1") {
		t.Fatalf("precondition: cooldown active")
	}

	if err := g.Reset(ctx, "device-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !g.ShouldShow(ctx, "device-1") {
		t.Fatalf("reset must clear cooldown")
	}
	if got := g.UsageCount(ctx, "device-1"); got != 0 {
		t.Fatalf("reset must clear usage count, got %d", got)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}))

	cd := Cooldown{
		LastShownAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		IgnoreUntil: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		UsageCount:  4,
	}
	if err := store.Set(ctx, "device-1", cd); err != nil {
		t.Fatalf("set: %v", err)
	}

	loaded, err := store.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !loaded.IgnoreUntil.Equal(cd.IgnoreUntil) || loaded.UsageCount != 4 {
		t.Fatalf("unexpected cooldown: %+v", loaded)
	}

	if err := store.Clear(ctx, "device-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cleared, err := store.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if cleared.UsageCount != 0 || !cleared.IgnoreUntil.IsZero() {
		t.Fatalf("expected empty cooldown after clear: %+v", cleared)
	}
}

func TestGateOverRedisStore(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}))

	g, now := gateAt(store, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	if err := g.Record(ctx, "device-1", ActionIgnore); err != nil {
		t.Fatalf("record: %v", err)
	}

	*now = now.Add(time.Hour)
	if g.ShouldShow(ctx, "device-1") {
		t.Fatalf("cooldown must persist through the store")
	}
}
