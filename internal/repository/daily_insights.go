package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/internal/partner"
	"github.com/moodloop/backend/pkg/kvstore"
)

// dailyInsightsRepository persists partner day buckets, one key per
// calendar date. It satisfies partner.DaysRepo.
type dailyInsightsRepository struct {
	store    kvstore.Store
	deviceID string
}

// NewDailyInsightsRepository creates a device-scoped day bucket repository
func NewDailyInsightsRepository(store kvstore.Store, deviceID string) partner.DaysRepo {
	return &dailyInsightsRepository{store: store, deviceID: deviceID}
}

func (r *dailyInsightsRepository) key(date string) string {
	return r.deviceID + ":partner:days:" + date
}

func (r *dailyInsightsRepository) GetDay(ctx context.Context, date string) (*models.DailyInsightsDay, error) {
	data, ok, err := r.store.Get(ctx, r.key(date))
	if err != nil {
		return nil, fmt.Errorf("failed to read day bucket %s: %w", date, err)
	}
	if !ok {
		return nil, nil
	}

	var day models.DailyInsightsDay
	if err := json.Unmarshal(data, &day); err != nil {
		return nil, fmt.Errorf("failed to unmarshal day bucket %s: %w", date, err)
	}
	return &day, nil
}

func (r *dailyInsightsRepository) PutDay(ctx context.Context, day *models.DailyInsightsDay) error {
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to marshal day bucket %s: %w", day.Date, err)
	}
	if err := r.store.Set(ctx, r.key(day.Date), data); err != nil {
		return fmt.Errorf("failed to store day bucket %s: %w", day.Date, err)
	}
	return nil
}
