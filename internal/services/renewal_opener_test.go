package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(daysOut int) models.Policy {
	return models.Policy{
		ID:             uuid.New(),
		ClientID:       uuid.New(),
		PolicyNumber:   "POL-1001",
		Carrier:        "Hartwell Mutual",
		PolicyType:     models.PolicyTypeGeneralLiability,
		Premium:        decimal.NewFromInt(42000),
		CoverageLimit:  decimal.NewFromInt(2000000),
		ExpirationDate: time.Now().AddDate(0, 0, daysOut),
		Status:         models.PolicyActive,
	}
}

func newTestOpener(renewals *fakeRenewalStore, tasks *fakeTaskStore, activity ActivityLog, notifier RenewalNotifier) *RenewalOpener {
	resolver := NewTaskTemplateResolver(&fakeTemplateStore{}, models.DefaultTaskTemplates)
	scorer := NewRiskScorer(DefaultRiskConfig())
	return NewRenewalOpener(renewals, tasks, resolver, scorer, activity, notifier)
}

// ============================================================================
// TEST SUITE 1: OPENING A RENEWAL
// ============================================================================

func TestOpenForPolicy_CreatesRenewalWithChecklist(t *testing.T) {
	renewals := newFakeRenewalStore()
	tasks := &fakeTaskStore{}
	activity := &fakeActivityLog{}
	notifier := &fakeNotifier{}
	opener := newTestOpener(renewals, tasks, activity, notifier)

	policy := testPolicy(25)
	outcome, err := opener.OpenForPolicy(context.Background(), policy)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	require.Len(t, renewals.renewals, 1)

	var renewal *models.Renewal
	for _, r := range renewals.renewals {
		renewal = r
	}
	assert.Equal(t, policy.ID, renewal.PolicyID)
	assert.Equal(t, policy.ClientID, renewal.ClientID)
	assert.Equal(t, policy.ExpirationDate, renewal.DueDate)
	assert.Equal(t, models.RenewalPending, renewal.Status)
	// 25 days out, 42k premium: urgent time pressure only.
	assert.Equal(t, models.RiskMedium, renewal.RiskLevel)
	assert.NotEmpty(t, renewal.RiskFactors)
	assert.Len(t, renewal.Insights, 3)

	// Full default checklist instantiated against the renewal.
	assert.Len(t, tasks.tasks, 13)
	for _, task := range tasks.tasks {
		assert.Equal(t, renewal.ID, task.RenewalID)
	}

	require.Len(t, activity.entries, 1)
	assert.Equal(t, models.ActivityRenewalCreated, activity.entries[0].Type)
	assert.Equal(t, 1, notifier.created)
}

func TestOpenForPolicy_SkipsWhenBlockingRenewalExists(t *testing.T) {
	renewals := newFakeRenewalStore()
	policy := testPolicy(30)
	renewals.blocking[policy.ID] = true
	tasks := &fakeTaskStore{}
	opener := newTestOpener(renewals, tasks, &fakeActivityLog{}, nil)

	outcome, err := opener.OpenForPolicy(context.Background(), policy)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, renewals.renewals)
	assert.Empty(t, tasks.tasks)
}

func TestOpenForPolicy_SkipsWhenLockDenied(t *testing.T) {
	renewals := newFakeRenewalStore()
	renewals.lockDenied = true
	opener := newTestOpener(renewals, &fakeTaskStore{}, &fakeActivityLog{}, nil)

	outcome, err := opener.OpenForPolicy(context.Background(), testPolicy(30))

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestOpenForPolicy_ProceedsWhenLockServiceDown(t *testing.T) {
	// Redis being unavailable must not stall renewal creation; the store
	// constraint still guards uniqueness.
	renewals := newFakeRenewalStore()
	renewals.lockErr = errors.New("redis unreachable")
	opener := newTestOpener(renewals, &fakeTaskStore{}, &fakeActivityLog{}, nil)

	outcome, err := opener.OpenForPolicy(context.Background(), testPolicy(30))

	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Len(t, renewals.renewals, 1)
}

func TestOpenForPolicy_ReleasesLock(t *testing.T) {
	renewals := newFakeRenewalStore()
	opener := newTestOpener(renewals, &fakeTaskStore{}, &fakeActivityLog{}, nil)

	_, err := opener.OpenForPolicy(context.Background(), testPolicy(30))

	require.NoError(t, err)
	assert.Equal(t, 1, renewals.lockAcquired)
	assert.Equal(t, 1, renewals.lockReleased)
}

// ============================================================================
// TEST SUITE 2: FAILURE PATHS
// ============================================================================

func TestOpenForPolicy_TaskCreationFailureSurfaces(t *testing.T) {
	renewals := newFakeRenewalStore()
	tasks := &fakeTaskStore{createErr: errors.New("insert failed")}
	opener := newTestOpener(renewals, tasks, &fakeActivityLog{}, nil)

	_, err := opener.OpenForPolicy(context.Background(), testPolicy(30))

	assert.Error(t, err)
}

func TestOpenForPolicy_NotifierFailureIsBestEffort(t *testing.T) {
	renewals := newFakeRenewalStore()
	notifier := &fakeNotifier{err: errors.New("broker down")}
	opener := newTestOpener(renewals, &fakeTaskStore{}, &fakeActivityLog{}, notifier)

	outcome, err := opener.OpenForPolicy(context.Background(), testPolicy(30))

	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
}
