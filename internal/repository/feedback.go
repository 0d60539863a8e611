package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/moodloop/backend/internal/advisor"
	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/pkg/kvstore"
)

// feedbackRepository persists the per-template feedback map and its
// decay stamp for one device. Key shapes are stable: a reimplementation
// must keep reading data written by earlier app versions.
type feedbackRepository struct {
	store    kvstore.Store
	deviceID string
}

// NewFeedbackRepository creates a device-scoped feedback repository
func NewFeedbackRepository(store kvstore.Store, deviceID string) advisor.FeedbackRepo {
	return &feedbackRepository{store: store, deviceID: deviceID}
}

func (r *feedbackRepository) mapKey() string   { return r.deviceID + ":advisor:feedback" }
func (r *feedbackRepository) decayKey() string { return r.deviceID + ":advisor:feedback_decayed_at" }

func (r *feedbackRepository) Load(ctx context.Context) (map[string]models.FeedbackRecord, error) {
	data, ok, err := r.store.Get(ctx, r.mapKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback map: %w", err)
	}
	if !ok {
		return map[string]models.FeedbackRecord{}, nil
	}

	var records map[string]models.FeedbackRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback map: %w", err)
	}
	return records, nil
}

func (r *feedbackRepository) Save(ctx context.Context, records map[string]models.FeedbackRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback map: %w", err)
	}
	if err := r.store.Set(ctx, r.mapKey(), data); err != nil {
		return fmt.Errorf("failed to store feedback map: %w", err)
	}
	return nil
}

func (r *feedbackRepository) DecayedAt(ctx context.Context) (time.Time, error) {
	data, ok, err := r.store.Get(ctx, r.decayKey())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read decay stamp: %w", err)
	}
	if !ok {
		return time.Time{}, nil
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse decay stamp: %w", err)
	}
	return time.UnixMilli(ms), nil
}

func (r *feedbackRepository) SetDecayedAt(ctx context.Context, t time.Time) error {
	if err := r.store.Set(ctx, r.decayKey(), []byte(strconv.FormatInt(t.UnixMilli(), 10))); err != nil {
		return fmt.Errorf("failed to store decay stamp: %w", err)
	}
	return nil
}
