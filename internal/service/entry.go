package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moodloop/backend/internal/logger"
	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/internal/repository"
	"github.com/moodloop/backend/pkg/kvstore"
)

// ErrEntryNotFound indicates the entry does not exist for this device
var ErrEntryNotFound = errors.New("entry not found")

type entryService struct {
	entryRepo repository.MoodEntryRepository
	store     kvstore.Store
	partner   PartnerService
	now       func() time.Time
}

// NewEntryService creates a new entry service. The partner service is
// optional; when present, each created entry refreshes that day's
// shareable postcard.
func NewEntryService(entryRepo repository.MoodEntryRepository, store kvstore.Store, partner PartnerService) EntryService {
	return &entryService{
		entryRepo: entryRepo,
		store:     store,
		partner:   partner,
		now:       time.Now,
	}
}

// CreateEntry records a mood entry. The mood label is stored as sent;
// the advisor core degrades unknown labels to the scale midpoint rather
// than rejecting them here.
func (s *entryService) CreateEntry(ctx context.Context, deviceID string, req *models.CreateMoodEntryRequest) (*models.MoodEntry, error) {
	now := s.now()
	entry := &models.MoodEntry{
		ID:          uuid.New().String(),
		DeviceID:    deviceID,
		Timestamp:   req.Timestamp,
		MoodValue:   models.MoodValue(req.MoodValue),
		JournalNote: req.JournalNote,
		Boosters:    req.Boosters,
		Drainers:    req.Drainers,
		CreatedAt:   now,
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	// First entry starts the trial clock
	trialRepo := repository.NewTrialRepository(s.store, deviceID)
	if err := trialRepo.EnsureTrialStart(ctx, now.UnixMilli()); err != nil {
		logger.Ctx(ctx).Warn("failed to record trial start", logger.Err(err))
	}

	// Refresh the partner postcard for the entry's day; sharing is
	// best-effort and never blocks journaling.
	if s.partner != nil {
		day := now
		if t, err := time.Parse(time.RFC3339Nano, req.Timestamp); err == nil {
			day = t.In(now.Location())
		} else if t, err := time.ParseInLocation("2006-01-02T15:04:05", req.Timestamp, now.Location()); err == nil {
			day = t
		}
		if _, err := s.partner.RefreshDay(ctx, deviceID, day); err != nil {
			logger.Ctx(ctx).Warn("failed to refresh partner day", logger.Err(err))
		}
	}

	return created, nil
}

func (s *entryService) GetEntries(ctx context.Context, deviceID string) ([]models.MoodEntry, error) {
	entries, err := s.entryRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, deviceID, entryID string) error {
	if err := s.entryRepo.Delete(ctx, deviceID, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
