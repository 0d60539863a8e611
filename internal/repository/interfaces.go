package repository

import (
	"context"
	"errors"

	"github.com/moodloop/backend/internal/models"
)

// ErrNotFound indicates the requested record does not exist
var ErrNotFound = errors.New("record not found")

// MoodEntryRepository defines the interface for mood entry data access.
// Entries are immutable once created; there is no update.
type MoodEntryRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	ListByDevice(ctx context.Context, deviceID string) ([]models.MoodEntry, error)
	Delete(ctx context.Context, deviceID, entryID string) error
}

// TrialRepository tracks trial onboarding state for one device
type TrialRepository interface {
	// TrialStart reports the stored trial start epoch-ms, if any
	TrialStart(ctx context.Context) (int64, bool, error)
	// EnsureTrialStart stores the start if none exists yet
	EnsureTrialStart(ctx context.Context, epochMs int64) error
	// MarkMilestone sets a one-shot flag; repeats are no-ops
	MarkMilestone(ctx context.Context, name string) error
	// Milestones returns all recorded flags
	Milestones(ctx context.Context) (map[string]bool, error)
}
