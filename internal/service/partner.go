package service

import (
	"context"
	"fmt"
	"time"

	"github.com/moodloop/backend/internal/advisor"
	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/internal/partner"
	"github.com/moodloop/backend/internal/repository"
	"github.com/moodloop/backend/pkg/kvstore"
)

type partnerService struct {
	entryRepo   repository.MoodEntryRepository
	contactRepo repository.PartnerContactRepository
	store       kvstore.Store
	engine      *partner.Engine
	now         func() time.Time
}

// NewPartnerService creates the partner-sharing service
func NewPartnerService(entryRepo repository.MoodEntryRepository, contactRepo repository.PartnerContactRepository, store kvstore.Store) PartnerService {
	return &partnerService{
		entryRepo:   entryRepo,
		contactRepo: contactRepo,
		store:       store,
		engine:      partner.NewEngine(systemRand{}),
		now:         time.Now,
	}
}

// Postcard generates (without storing) the shareable postcard for the
// calendar day containing the given time. Nil means the day had too
// little to share, which is a normal outcome.
func (s *partnerService) Postcard(ctx context.Context, deviceID string, day time.Time) (*models.Postcard, error) {
	dayEntries, err := s.dayEntries(ctx, deviceID, day)
	if err != nil {
		return nil, err
	}
	return s.engine.GeneratePostcard(dayEntries), nil
}

// RefreshDay regenerates the day's postcard and merges it into the
// day's rollup bucket. A nil postcard leaves the bucket untouched.
func (s *partnerService) RefreshDay(ctx context.Context, deviceID string, day time.Time) (*models.DailyInsightsDay, error) {
	pc, err := s.Postcard(ctx, deviceID, day)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, nil
	}

	rollup := partner.NewRollup(repository.NewDailyInsightsRepository(s.store, deviceID))
	return rollup.Upsert(ctx, day.Format(partner.DateKeyFormat), *pc)
}

// Digest returns the rolling 7-day window of day buckets
func (s *partnerService) Digest(ctx context.Context, deviceID string) ([]models.DailyInsightsDay, error) {
	rollup := partner.NewRollup(repository.NewDailyInsightsRepository(s.store, deviceID))
	return rollup.Window(ctx, s.now(), partner.DigestDays), nil
}

// Summary aggregates day buckets over the current week or month
func (s *partnerService) Summary(ctx context.Context, deviceID string, period models.Period) (*models.PartnerSummary, error) {
	if period != models.PeriodWeek && period != models.PeriodMonth {
		return nil, fmt.Errorf("unsupported summary period %q", period)
	}
	rollup := partner.NewRollup(repository.NewDailyInsightsRepository(s.store, deviceID))
	summary := rollup.Summarize(ctx, period, s.now())
	return &summary, nil
}

func (s *partnerService) SetContact(ctx context.Context, deviceID string, contact *models.PartnerContact) error {
	if err := s.contactRepo.Set(ctx, deviceID, contact); err != nil {
		return fmt.Errorf("failed to store partner contact: %w", err)
	}
	return nil
}

func (s *partnerService) GetContact(ctx context.Context, deviceID string) (*models.PartnerContact, error) {
	return s.contactRepo.Get(ctx, deviceID)
}

// dayEntries loads and adapts the device's entries for one calendar day
func (s *partnerService) dayEntries(ctx context.Context, deviceID string, day time.Time) ([]models.AdvisorEntry, error) {
	entries, err := s.entryRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	start, end := advisor.GetPeriodRange(models.PeriodDay, day)
	startMs, endMs := start.UnixMilli(), end.UnixMilli()

	adapted := advisor.AdaptEntries(entries)
	dayEntries := make([]models.AdvisorEntry, 0, len(adapted))
	for _, e := range adapted {
		if e.T >= startMs && e.T <= endMs {
			dayEntries = append(dayEntries, e)
		}
	}
	return dayEntries, nil
}
