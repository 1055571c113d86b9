package services

import (
	"context"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
)

// Store interfaces consumed by the engine. The sqlx repositories satisfy
// them in production; tests substitute in-memory fakes. Injecting these
// keeps lifetime and concurrency discipline out of the engine itself.

type PolicyStore interface {
	FindExpiringActive(ctx context.Context, windowEnd time.Time) ([]models.Policy, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error)
}

type RenewalStore interface {
	HasBlockingRenewal(ctx context.Context, policyID uuid.UUID) (bool, error)
	Create(ctx context.Context, renewal *models.Renewal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Renewal, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]models.Renewal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RenewalStatus) error
	Touch(ctx context.Context, id uuid.UUID) error
	IncrementQuotesReceived(ctx context.Context, id uuid.UUID) error
	IncrementEmailsSent(ctx context.Context, id uuid.UUID) error
	ListEscalationCandidates(ctx context.Context, windowEnd time.Time) ([]models.EscalationCandidate, error)
	AcquireOpenLock(ctx context.Context, policyID uuid.UUID) (bool, error)
	ReleaseOpenLock(ctx context.Context, policyID uuid.UUID)
}

type ClientStore interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

// PolicyAdminStore covers the intake-side writes the scan never performs.
type PolicyAdminStore interface {
	Create(ctx context.Context, policy *models.Policy) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PolicyStatus) error
}

type TaskTemplateAdminStore interface {
	Create(ctx context.Context, template *models.TaskTemplate) error
}

type TaskTemplateStore interface {
	FindActive(ctx context.Context, policyType models.PolicyType) ([]models.TaskTemplate, error)
}

type TaskStore interface {
	CreateMany(ctx context.Context, tasks []models.Task) error
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
	FindByRenewal(ctx context.Context, renewalID uuid.UUID) ([]models.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error)
}

type QuoteStore interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	FindByRenewal(ctx context.Context, renewalID uuid.UUID) ([]models.Quote, error)
	SelectExclusive(ctx context.Context, quoteID, renewalID uuid.UUID) error
}

type ActivityLog interface {
	Append(ctx context.Context, activity *models.Activity) error
}

// RenewalNotifier pushes renewal lifecycle events to brokers. Delivery is
// best effort; a failed notification never fails the operation that
// triggered it.
type RenewalNotifier interface {
	NotifyRenewalCreated(ctx context.Context, renewal *models.Renewal, policy *models.Policy) error
}
