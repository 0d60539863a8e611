package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/moodloop/backend/internal/advisor"
	"github.com/moodloop/backend/pkg/kvstore"
)

// trialRepository persists trial start and milestone flags for one
// device. Besides TrialRepository it satisfies advisor.TrialStore.
type trialRepository struct {
	store    kvstore.Store
	deviceID string
}

// NewTrialRepository creates a device-scoped trial repository
func NewTrialRepository(store kvstore.Store, deviceID string) TrialRepository {
	return &trialRepository{store: store, deviceID: deviceID}
}

func (r *trialRepository) startKey() string      { return r.deviceID + ":trial:start" }
func (r *trialRepository) milestonesKey() string { return r.deviceID + ":trial:milestones" }

func (r *trialRepository) TrialStart(ctx context.Context) (int64, bool, error) {
	data, ok, err := r.store.Get(ctx, r.startKey())
	if err != nil {
		return 0, false, fmt.Errorf("failed to read trial start: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse trial start: %w", err)
	}
	return ms, true, nil
}

func (r *trialRepository) EnsureTrialStart(ctx context.Context, epochMs int64) error {
	if _, ok, err := r.TrialStart(ctx); err != nil {
		return err
	} else if ok {
		return nil
	}
	if err := r.store.Set(ctx, r.startKey(), []byte(strconv.FormatInt(epochMs, 10))); err != nil {
		return fmt.Errorf("failed to store trial start: %w", err)
	}
	return nil
}

func (r *trialRepository) MarkMilestone(ctx context.Context, name string) error {
	milestones, err := r.Milestones(ctx)
	if err != nil {
		milestones = map[string]bool{}
	}
	if milestones[name] {
		return nil
	}
	milestones[name] = true

	data, err := json.Marshal(milestones)
	if err != nil {
		return fmt.Errorf("failed to marshal milestones: %w", err)
	}
	if err := r.store.Set(ctx, r.milestonesKey(), data); err != nil {
		return fmt.Errorf("failed to store milestones: %w", err)
	}
	return nil
}

func (r *trialRepository) Milestones(ctx context.Context) (map[string]bool, error) {
	data, ok, err := r.store.Get(ctx, r.milestonesKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read milestones: %w", err)
	}
	if !ok {
		return map[string]bool{}, nil
	}

	var milestones map[string]bool
	if err := json.Unmarshal(data, &milestones); err != nil {
		return nil, fmt.Errorf("failed to unmarshal milestones: %w", err)
	}
	return milestones, nil
}

// advisorTrialStore bridges the int64 epoch-ms storage shape to the
// advisor.TrialStore contract.
type advisorTrialStore struct {
	repo TrialRepository
}

// NewAdvisorTrialStore exposes a trial repository as an advisor.TrialStore
func NewAdvisorTrialStore(repo TrialRepository) advisor.TrialStore {
	return advisorTrialStore{repo: repo}
}

func (s advisorTrialStore) TrialStart(ctx context.Context) (time.Time, bool, error) {
	ms, ok, err := s.repo.TrialStart(ctx)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

func (s advisorTrialStore) MarkMilestone(ctx context.Context, name string) error {
	return s.repo.MarkMilestone(ctx, name)
}
