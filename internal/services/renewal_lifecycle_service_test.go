package services

import (
	"context"
	"testing"

	"renewal-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lifecycleFixture() (*RenewalLifecycleService, *fakeRenewalStore, *fakeActivityLog, uuid.UUID) {
	renewals := newFakeRenewalStore()
	renewal := &models.Renewal{
		ID:       uuid.New(),
		PolicyID: uuid.New(),
		ClientID: uuid.New(),
		Status:   models.RenewalQuoted,
	}
	renewals.renewals[renewal.ID] = renewal
	activity := &fakeActivityLog{}
	return NewRenewalLifecycleService(renewals, activity), renewals, activity, renewal.ID
}

func TestUpdateRenewalStatus_BindLogsTransition(t *testing.T) {
	service, renewals, activity, renewalID := lifecycleFixture()

	renewal, err := service.UpdateStatus(context.Background(), renewalID, models.RenewalBound)

	require.NoError(t, err)
	assert.Equal(t, models.RenewalBound, renewal.Status)
	assert.Equal(t, models.RenewalBound, renewals.renewals[renewalID].Status)
	require.Len(t, activity.entries, 1)
	assert.Equal(t, models.ActivityStatusChanged, activity.entries[0].Type)
	assert.Contains(t, activity.entries[0].Description, "quoted")
	assert.Contains(t, activity.entries[0].Description, "bound")
}

func TestUpdateRenewalStatus_RejectsEngineOwnedStatuses(t *testing.T) {
	service, _, activity, renewalID := lifecycleFixture()

	for _, status := range []models.RenewalStatus{models.RenewalPending, models.RenewalQuoted} {
		_, err := service.UpdateStatus(context.Background(), renewalID, status)
		assert.Error(t, err, "status %s must not be assignable by hand", status)
	}
	assert.Empty(t, activity.entries)
}

func TestUpdateRenewalStatus_RejectsUnknownStatus(t *testing.T) {
	service, _, _, renewalID := lifecycleFixture()

	_, err := service.UpdateStatus(context.Background(), renewalID, models.RenewalStatus("misplaced"))

	assert.Error(t, err)
}

func TestUpdateRenewalStatus_UnknownRenewal(t *testing.T) {
	service, _, _, _ := lifecycleFixture()

	_, err := service.UpdateStatus(context.Background(), uuid.New(), models.RenewalLost)

	assert.Error(t, err)
}

func TestListClientRenewals_FiltersByClient(t *testing.T) {
	service, renewals, _, _ := lifecycleFixture()
	clientID := uuid.New()
	mine := &models.Renewal{ID: uuid.New(), PolicyID: uuid.New(), ClientID: clientID, Status: models.RenewalPending}
	renewals.renewals[mine.ID] = mine

	listed, err := service.ListClientRenewals(context.Background(), clientID)

	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)
}
