package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/pkg/kvstore"
)

type moodEntryRepository struct {
	store kvstore.Store
}

// NewMoodEntryRepository creates a mood entry repository over the store
func NewMoodEntryRepository(store kvstore.Store) MoodEntryRepository {
	return &moodEntryRepository{store: store}
}

func entriesKey(deviceID string) string {
	return deviceID + ":entries"
}

func (r *moodEntryRepository) Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	entries, err := r.ListByDevice(ctx, entry.DeviceID)
	if err != nil {
		return nil, err
	}

	entries = append(entries, *entry)
	if err := r.save(ctx, entry.DeviceID, entries); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *moodEntryRepository) ListByDevice(ctx context.Context, deviceID string) ([]models.MoodEntry, error) {
	data, ok, err := r.store.Get(ctx, entriesKey(deviceID))
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	if !ok {
		return []models.MoodEntry{}, nil
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	return entries, nil
}

func (r *moodEntryRepository) Delete(ctx context.Context, deviceID, entryID string) error {
	entries, err := r.ListByDevice(ctx, deviceID)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return ErrNotFound
	}
	return r.save(ctx, deviceID, kept)
}

func (r *moodEntryRepository) save(ctx context.Context, deviceID string, entries []models.MoodEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	if err := r.store.Set(ctx, entriesKey(deviceID), data); err != nil {
		return fmt.Errorf("failed to store entries: %w", err)
	}
	return nil
}
