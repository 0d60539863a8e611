package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/pkg/kvstore"
)

// PartnerContactRepository stores the connected partner's contact info
type PartnerContactRepository interface {
	Get(ctx context.Context, deviceID string) (*models.PartnerContact, error)
	Set(ctx context.Context, deviceID string, contact *models.PartnerContact) error
}

type partnerContactRepository struct {
	store kvstore.Store
}

// NewPartnerContactRepository creates a partner contact repository
func NewPartnerContactRepository(store kvstore.Store) PartnerContactRepository {
	return &partnerContactRepository{store: store}
}

func contactKey(deviceID string) string { return deviceID + ":partner:contact" }

func (r *partnerContactRepository) Get(ctx context.Context, deviceID string) (*models.PartnerContact, error) {
	data, ok, err := r.store.Get(ctx, contactKey(deviceID))
	if err != nil {
		return nil, fmt.Errorf("failed to read partner contact: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var contact models.PartnerContact
	if err := json.Unmarshal(data, &contact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal partner contact: %w", err)
	}
	return &contact, nil
}

func (r *partnerContactRepository) Set(ctx context.Context, deviceID string, contact *models.PartnerContact) error {
	data, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("failed to marshal partner contact: %w", err)
	}
	if err := r.store.Set(ctx, contactKey(deviceID), data); err != nil {
		return fmt.Errorf("failed to store partner contact: %w", err)
	}
	return nil
}
