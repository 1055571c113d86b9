package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"renewal-service/internal/models"
	"renewal-service/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OpenOutcome reports what happened for one policy candidate.
type OpenOutcome int

const (
	OutcomeCreated OpenOutcome = iota
	OutcomeSkipped
)

// RenewalOpener decides whether a policy needs a renewal opened and, when
// it does, creates the renewal with its risk assessment and instantiates
// the workflow checklist.
type RenewalOpener struct {
	renewals RenewalStore
	tasks    TaskStore
	resolver *TaskTemplateResolver
	scorer   *RiskScorer
	activity ActivityLog
	notifier RenewalNotifier
	now      func() time.Time
}

func NewRenewalOpener(
	renewals RenewalStore,
	tasks TaskStore,
	resolver *TaskTemplateResolver,
	scorer *RiskScorer,
	activity ActivityLog,
	notifier RenewalNotifier,
) *RenewalOpener {
	return &RenewalOpener{
		renewals: renewals,
		tasks:    tasks,
		resolver: resolver,
		scorer:   scorer,
		activity: activity,
		notifier: notifier,
		now:      time.Now,
	}
}

// OpenForPolicy runs the open-renewal workflow for a single candidate. A
// policy that already has an open renewal is skipped, not failed. The
// store's unique constraint remains the authoritative gate; the redis lock
// only narrows the check-then-create window under concurrent scans.
func (o *RenewalOpener) OpenForPolicy(ctx context.Context, policy models.Policy) (OpenOutcome, error) {
	locked, err := o.renewals.AcquireOpenLock(ctx, policy.ID)
	if err != nil {
		// Lock service being down must not stall the batch; the unique
		// constraint still backstops correctness.
		slog.Warn("Open lock unavailable, proceeding on store constraint alone",
			"policy_id", policy.ID, "error", err)
	} else if !locked {
		slog.Info("Another scan is opening this policy, skipping", "policy_id", policy.ID)
		return OutcomeSkipped, nil
	} else {
		defer o.renewals.ReleaseOpenLock(ctx, policy.ID)
	}

	blocked, err := o.renewals.HasBlockingRenewal(ctx, policy.ID)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("failed to check open renewal: %w", err)
	}
	if blocked {
		return OutcomeSkipped, nil
	}

	now := o.now()
	daysUntilExpiry := DaysUntil(now, policy.ExpirationDate)
	assessment := o.scorer.Score(policy.PolicyType, policy.Premium, daysUntilExpiry)

	renewal := &models.Renewal{
		ID:          uuid.New(),
		PolicyID:    policy.ID,
		ClientID:    policy.ClientID,
		DueDate:     policy.ExpirationDate,
		Status:      models.RenewalPending,
		RiskLevel:   assessment.Level,
		RiskFactors: pq.StringArray(assessment.Factors),
		Insights:    pq.StringArray(buildInsights(policy, daysUntilExpiry)),
	}

	if err := o.renewals.Create(ctx, renewal); err != nil {
		if errors.Is(err, repository.ErrRenewalExists) {
			return OutcomeSkipped, nil
		}
		return OutcomeSkipped, fmt.Errorf("failed to create renewal: %w", err)
	}

	templates, err := o.resolver.Resolve(ctx, policy.PolicyType)
	if err != nil {
		return OutcomeCreated, err
	}

	tasks, err := o.resolver.BuildTasks(renewal.ID, renewal.DueDate, templates)
	if err != nil {
		return OutcomeCreated, err
	}

	if err := o.tasks.CreateMany(ctx, tasks); err != nil {
		return OutcomeCreated, fmt.Errorf("failed to create renewal tasks: %w", err)
	}

	clientID := policy.ClientID
	renewalID := renewal.ID
	if err := o.activity.Append(ctx, &models.Activity{
		ID:        uuid.New(),
		ClientID:  &clientID,
		RenewalID: &renewalID,
		Type:      models.ActivityRenewalCreated,
		Description: fmt.Sprintf("Renewal opened for policy %s (%s risk, %d tasks)",
			policy.PolicyNumber, assessment.Level, len(tasks)),
	}); err != nil {
		return OutcomeCreated, fmt.Errorf("failed to log renewal creation: %w", err)
	}

	if o.notifier != nil {
		if err := o.notifier.NotifyRenewalCreated(ctx, renewal, &policy); err != nil {
			slog.Warn("Failed to publish renewal-created notification",
				"renewal_id", renewal.ID, "error", err)
		}
	}

	slog.Info("Renewal opened",
		"renewal_id", renewal.ID,
		"policy_number", policy.PolicyNumber,
		"risk_level", assessment.Level,
		"days_until_expiry", daysUntilExpiry,
		"task_count", len(tasks))

	return OutcomeCreated, nil
}

// buildInsights produces the descriptive strings shown alongside the risk
// factors. They are broker-facing metadata, not scoring inputs.
func buildInsights(policy models.Policy, daysUntilExpiry int) []string {
	return []string{
		fmt.Sprintf("Policy expires in %d days", daysUntilExpiry),
		fmt.Sprintf("Current premium is %s", formatPremium(policy.Premium)),
		fmt.Sprintf("Incumbent carrier is %s", policy.Carrier),
	}
}
