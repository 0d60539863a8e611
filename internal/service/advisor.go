package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/moodloop/backend/internal/advisor"
	"github.com/moodloop/backend/internal/logger"
	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/internal/repository"
	"github.com/moodloop/backend/pkg/kvstore"
)

// systemRand is the production randomness source for variant selection
type systemRand struct{}

func (systemRand) Intn(n int) int { return rand.Intn(n) }

type advisorService struct {
	entryRepo   repository.MoodEntryRepository
	contactRepo repository.PartnerContactRepository
	store       kvstore.Store
	catalog     []advisor.Template
	rand        advisor.Rand
	cooldown    time.Duration
	now         func() time.Time
}

// NewAdvisorService creates the advisor pipeline service
func NewAdvisorService(entryRepo repository.MoodEntryRepository, contactRepo repository.PartnerContactRepository, store kvstore.Store, cooldown time.Duration) AdvisorService {
	return &advisorService{
		entryRepo:   entryRepo,
		contactRepo: contactRepo,
		store:       store,
		catalog:     advisor.Catalog(),
		rand:        systemRand{},
		cooldown:    cooldown,
		now:         time.Now,
	}
}

// GetItems runs the full synthesis pass for one device and period:
// adapt, aggregate, detect, score, compose.
func (s *advisorService) GetItems(ctx context.Context, deviceID string, period models.Period) (*models.AdvisorResponse, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("unknown period %q", period)
	}

	entries, err := s.entryRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	now := s.now()
	adapted := advisor.AdaptEntries(entries)
	events := advisor.DetectAll(adapted, period, now)

	composer := s.composer(deviceID).WithNow(s.now)
	items := composer.Compose(ctx, period, events, advisor.ComposeParams{
		TotalEntries: len(entries),
		Actions:      s.actionContext(ctx, deviceID, now),
	})

	logger.Ctx(ctx).Info("advisor pass complete",
		logger.String("device_id", deviceID),
		logger.String("period", string(period)),
		logger.Int("events", len(events)),
		logger.Int("items", len(items)))

	return &models.AdvisorResponse{
		Items:      items,
		Period:     period,
		ComputedAt: now,
	}, nil
}

// RecordFeedback applies explicit helpful / not-helpful feedback to a
// template's learned weight.
func (s *advisorService) RecordFeedback(ctx context.Context, deviceID, templateID string, helpful bool) error {
	engine := advisor.NewFeedbackEngine(repository.NewFeedbackRepository(s.store, deviceID), s.catalog)
	if helpful {
		engine.RecordHelpful(ctx, templateID)
	} else {
		engine.RecordNotHelpful(ctx, templateID)
	}
	return nil
}

// composer builds a per-device composer over kv-backed state
func (s *advisorService) composer(deviceID string) *advisor.Composer {
	feedback := advisor.NewFeedbackEngine(repository.NewFeedbackRepository(s.store, deviceID), s.catalog)
	cooldowns := repository.NewCooldownRepository(s.store, deviceID)
	trial := repository.NewAdvisorTrialStore(repository.NewTrialRepository(s.store, deviceID))

	composer := advisor.NewComposer(s.catalog, cooldowns, feedback, trial, advisor.NewActionGenerator(), s.rand)
	if s.cooldown > 0 {
		composer = composer.WithCooldown(s.cooldown)
	}
	return composer
}

// actionContext reads the partner contact; a missing or unreadable
// contact degrades actions to scheme-only links.
func (s *advisorService) actionContext(ctx context.Context, deviceID string, now time.Time) advisor.ActionContext {
	actx := advisor.ActionContext{Now: now}
	contact, err := s.contactRepo.Get(ctx, deviceID)
	if err != nil || contact == nil {
		return actx
	}
	actx.PartnerPhone = contact.Phone
	actx.PartnerName = contact.Name
	return actx
}
