package services

import (
	"context"
	"fmt"
	"log/slog"

	"renewal-service/internal/models"

	"github.com/google/uuid"
)

// RenewalLifecycleService covers the broker-driven renewal transitions:
// picking a renewal up, binding it, losing it, cancelling it. Pending and
// quoted are system-assigned (by the opener and quote selection) and cannot
// be requested here.
type RenewalLifecycleService struct {
	renewals RenewalStore
	activity ActivityLog
}

func NewRenewalLifecycleService(renewals RenewalStore, activity ActivityLog) *RenewalLifecycleService {
	return &RenewalLifecycleService{
		renewals: renewals,
		activity: activity,
	}
}

func (s *RenewalLifecycleService) GetRenewal(ctx context.Context, id uuid.UUID) (*models.Renewal, error) {
	return s.renewals.GetByID(ctx, id)
}

func (s *RenewalLifecycleService) ListClientRenewals(ctx context.Context, clientID uuid.UUID) ([]models.Renewal, error) {
	return s.renewals.FindByClient(ctx, clientID)
}

func (s *RenewalLifecycleService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RenewalStatus) (*models.Renewal, error) {
	switch status {
	case models.RenewalInProgress, models.RenewalBound, models.RenewalLost, models.RenewalCancelled:
	case models.RenewalPending, models.RenewalQuoted:
		return nil, fmt.Errorf("status %q is assigned by the engine, not manually", status)
	default:
		return nil, fmt.Errorf("invalid renewal status %q", status)
	}

	renewal, err := s.renewals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := renewal.Status

	if err := s.renewals.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	renewalID := renewal.ID
	clientID := renewal.ClientID
	if err := s.activity.Append(ctx, &models.Activity{
		ID:          uuid.New(),
		ClientID:    &clientID,
		RenewalID:   &renewalID,
		Type:        models.ActivityStatusChanged,
		Description: fmt.Sprintf("Renewal moved from %s to %s", previous, status),
	}); err != nil {
		slog.Warn("Failed to log renewal status change", "renewal_id", id, "error", err)
	}

	renewal.Status = status
	return renewal, nil
}
