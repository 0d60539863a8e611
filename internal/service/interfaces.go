package service

import (
	"context"
	"time"

	"github.com/moodloop/backend/internal/models"
)

// EntryService defines the interface for mood entry business logic
type EntryService interface {
	CreateEntry(ctx context.Context, deviceID string, req *models.CreateMoodEntryRequest) (*models.MoodEntry, error)
	GetEntries(ctx context.Context, deviceID string) ([]models.MoodEntry, error)
	DeleteEntry(ctx context.Context, deviceID, entryID string) error
}

// AdvisorService defines the interface for the insight pipeline
type AdvisorService interface {
	GetItems(ctx context.Context, deviceID string, period models.Period) (*models.AdvisorResponse, error)
	RecordFeedback(ctx context.Context, deviceID, templateID string, helpful bool) error
}

// PartnerService defines the interface for partner-sharing logic
type PartnerService interface {
	Postcard(ctx context.Context, deviceID string, day time.Time) (*models.Postcard, error)
	RefreshDay(ctx context.Context, deviceID string, day time.Time) (*models.DailyInsightsDay, error)
	Digest(ctx context.Context, deviceID string) ([]models.DailyInsightsDay, error)
	Summary(ctx context.Context, deviceID string, period models.Period) (*models.PartnerSummary, error)
	SetContact(ctx context.Context, deviceID string, contact *models.PartnerContact) error
	GetContact(ctx context.Context, deviceID string) (*models.PartnerContact, error)
}
