package prompt

import (
	"context"
	"time"
)

// Action is the choice a guest made when the sign-up prompt was shown.
type Action string

const (
	ActionSignup Action = "signup"
	ActionLater  Action = "later"
	ActionIgnore Action = "ignore"
)

const (
	laterCooldown  = time.Hour
	ignoreCooldown = 24 * time.Hour
)

// Cooldown is the per-device prompt state. It survives restarts and is wiped
// entirely when the guest converts to an account.
type Cooldown struct {
	LastShownAt time.Time `json:"last_shown_at"`
	IgnoreUntil time.Time `json:"ignore_until"`
	UsageCount  int       `json:"usage_count"`
}

// Store is durable key-value storage for Cooldown, keyed per device.
type Store interface {
	Get(ctx context.Context, deviceID string) (Cooldown, error)
	Set(ctx context.Context, deviceID string, cd Cooldown) error
	Clear(ctx context.Context, deviceID string) error
}

// Gate throttles the sign-up interruption shown to guests.
type Gate struct {
	store Store
	now   func() time.Time
}

func NewGate(store Store) *Gate {
	return &Gate{store: store, now: time.Now}
}

// ShouldShow reports whether the prompt may be shown. A storage failure
// defaults to showing rather than silently suppressing the prompt forever.
func (g *Gate) ShouldShow(ctx context.Context, deviceID string) bool {
	cd, err := g.store.Get(ctx, deviceID)
	if err != nil {
		return true
	}
	return !g.now().Before(cd.IgnoreUntil)
}

// Record stores the outcome of a prompt. "later" suppresses for an hour,
// "ignore" for a day; "signup" sets no cooldown since signing up ends the
// guest flow. The usage counter increments on every interaction and is kept
// for future frequency heuristics; nothing gates on it.
func (g *Gate) Record(ctx context.Context, deviceID string, action Action) error {
	cd, _ := g.store.Get(ctx, deviceID)

	now := g.now()
	cd.LastShownAt = now
	cd.UsageCount++

	switch action {
	case ActionLater:
		cd.IgnoreUntil = now.Add(laterCooldown)
	case ActionIgnore:
		cd.IgnoreUntil = now.Add(ignoreCooldown)
	}

	return g.store.Set(ctx, deviceID, cd)
}

// UsageCount returns how many guest-flow interactions this device has had.
func (g *Gate) UsageCount(ctx context.Context, deviceID string) int {
	cd, err := g.store.Get(ctx, deviceID)
	if err != nil {
		return 0
	}
	return cd.UsageCount
}

// Reset wipes all prompt state for a device. Called when the guest creates
// an account.
func (g *Gate) Reset(ctx context.Context, deviceID string) error {
	return g.store.Clear(ctx, deviceID)
}
