package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moodloop/backend/internal/advisor"
	"github.com/moodloop/backend/pkg/kvstore"
)

// cooldownRepository persists template id → last-rendered epoch-ms for
// one device. It satisfies advisor.CooldownStore.
type cooldownRepository struct {
	store    kvstore.Store
	deviceID string
}

// NewCooldownRepository creates a device-scoped cooldown repository
func NewCooldownRepository(store kvstore.Store, deviceID string) advisor.CooldownStore {
	return &cooldownRepository{store: store, deviceID: deviceID}
}

func (r *cooldownRepository) key() string { return r.deviceID + ":advisor:cooldowns" }

func (r *cooldownRepository) LastShown(ctx context.Context, templateID string) (time.Time, bool, error) {
	cooldowns, err := r.load(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	ms, ok := cooldowns[templateID]
	if !ok {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

func (r *cooldownRepository) MarkShown(ctx context.Context, templateID string, at time.Time) error {
	cooldowns, err := r.load(ctx)
	if err != nil {
		// A lost read must not block marking; start fresh
		cooldowns = map[string]int64{}
	}
	cooldowns[templateID] = at.UnixMilli()

	data, err := json.Marshal(cooldowns)
	if err != nil {
		return fmt.Errorf("failed to marshal cooldown map: %w", err)
	}
	if err := r.store.Set(ctx, r.key(), data); err != nil {
		return fmt.Errorf("failed to store cooldown map: %w", err)
	}
	return nil
}

func (r *cooldownRepository) load(ctx context.Context) (map[string]int64, error) {
	data, ok, err := r.store.Get(ctx, r.key())
	if err != nil {
		return nil, fmt.Errorf("failed to read cooldown map: %w", err)
	}
	if !ok {
		return map[string]int64{}, nil
	}

	var cooldowns map[string]int64
	if err := json.Unmarshal(data, &cooldowns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cooldown map: %w", err)
	}
	return cooldowns, nil
}
