package services

import (
	"context"
	"time"

	"renewal-service/internal/models"
	"renewal-service/internal/repository"

	"github.com/google/uuid"
)

// ============================================================================
// IN-MEMORY STORE FAKES
// ============================================================================

type fakePolicyStore struct {
	policies []models.Policy
	findErr  error
}

func (f *fakePolicyStore) Create(_ context.Context, policy *models.Policy) error {
	f.policies = append(f.policies, *policy)
	return nil
}

func (f *fakePolicyStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.PolicyStatus) error {
	for i := range f.policies {
		if f.policies[i].ID == id {
			f.policies[i].Status = status
			return nil
		}
	}
	return errNotFound
}

func (f *fakePolicyStore) FindExpiringActive(_ context.Context, _ time.Time) ([]models.Policy, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.policies, nil
}

func (f *fakePolicyStore) GetByID(_ context.Context, id uuid.UUID) (*models.Policy, error) {
	for i := range f.policies {
		if f.policies[i].ID == id {
			return &f.policies[i], nil
		}
	}
	return nil, errNotFound
}

type fakeRenewalStore struct {
	renewals     map[uuid.UUID]*models.Renewal
	blocking     map[uuid.UUID]bool
	candidates   []models.EscalationCandidate
	createErr    error
	checkErr     error
	lockErr      error
	lockDenied   bool
	touched      []uuid.UUID
	quoteBumps   []uuid.UUID
	lockAcquired int
	lockReleased int
}

func newFakeRenewalStore() *fakeRenewalStore {
	return &fakeRenewalStore{
		renewals: make(map[uuid.UUID]*models.Renewal),
		blocking: make(map[uuid.UUID]bool),
	}
}

func (f *fakeRenewalStore) HasBlockingRenewal(_ context.Context, policyID uuid.UUID) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.blocking[policyID], nil
}

func (f *fakeRenewalStore) Create(_ context.Context, renewal *models.Renewal) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.blocking[renewal.PolicyID] {
		return repository.ErrRenewalExists
	}
	renewal.CreatedAt = time.Now()
	renewal.LastTouchedAt = renewal.CreatedAt
	f.renewals[renewal.ID] = renewal
	f.blocking[renewal.PolicyID] = true
	return nil
}

func (f *fakeRenewalStore) GetByID(_ context.Context, id uuid.UUID) (*models.Renewal, error) {
	if r, ok := f.renewals[id]; ok {
		return r, nil
	}
	return nil, errNotFound
}

func (f *fakeRenewalStore) FindByClient(_ context.Context, clientID uuid.UUID) ([]models.Renewal, error) {
	var out []models.Renewal
	for _, r := range f.renewals {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRenewalStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.RenewalStatus) error {
	r, ok := f.renewals[id]
	if !ok {
		return errNotFound
	}
	r.Status = status
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeRenewalStore) IncrementEmailsSent(_ context.Context, id uuid.UUID) error {
	if r, ok := f.renewals[id]; ok {
		r.EmailsSent++
	}
	return nil
}

func (f *fakeRenewalStore) Touch(_ context.Context, id uuid.UUID) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeRenewalStore) IncrementQuotesReceived(_ context.Context, id uuid.UUID) error {
	f.quoteBumps = append(f.quoteBumps, id)
	if r, ok := f.renewals[id]; ok {
		r.QuotesReceived++
	}
	return nil
}

func (f *fakeRenewalStore) ListEscalationCandidates(_ context.Context, _ time.Time) ([]models.EscalationCandidate, error) {
	return f.candidates, nil
}

func (f *fakeRenewalStore) AcquireOpenLock(_ context.Context, _ uuid.UUID) (bool, error) {
	if f.lockErr != nil {
		return false, f.lockErr
	}
	if f.lockDenied {
		return false, nil
	}
	f.lockAcquired++
	return true, nil
}

func (f *fakeRenewalStore) ReleaseOpenLock(_ context.Context, _ uuid.UUID) {
	f.lockReleased++
}

type fakeTemplateStore struct {
	templates []models.TaskTemplate
	err       error
}

func (f *fakeTemplateStore) FindActive(_ context.Context, _ models.PolicyType) ([]models.TaskTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.templates, nil
}

func (f *fakeTemplateStore) Create(_ context.Context, template *models.TaskTemplate) error {
	if f.err != nil {
		return f.err
	}
	f.templates = append(f.templates, *template)
	return nil
}

type fakeClientStore struct {
	clients []models.Client
}

func (f *fakeClientStore) Create(_ context.Context, client *models.Client) error {
	f.clients = append(f.clients, *client)
	return nil
}

func (f *fakeClientStore) GetByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, errNotFound
}

type fakeTaskStore struct {
	tasks     []models.Task
	createErr error
}

func (f *fakeTaskStore) CreateMany(_ context.Context, tasks []models.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tasks = append(f.tasks, tasks...)
	return nil
}

func (f *fakeTaskStore) MarkOverdue(_ context.Context, before time.Time) (int64, error) {
	var count int64
	for i := range f.tasks {
		open := f.tasks[i].Status == models.TaskPending || f.tasks[i].Status == models.TaskInProgress
		if open && f.tasks[i].DueDate.Before(before) {
			f.tasks[i].Status = models.TaskOverdue
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskStore) FindByRenewal(_ context.Context, renewalID uuid.UUID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.RenewalID == renewalID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
			if status == models.TaskCompleted {
				now := time.Now()
				f.tasks[i].CompletedAt = &now
			}
			return &f.tasks[i], nil
		}
	}
	return nil, errNotFound
}

type fakeQuoteStore struct {
	quotes []models.Quote
}

func (f *fakeQuoteStore) Create(_ context.Context, quote *models.Quote) error {
	f.quotes = append(f.quotes, *quote)
	return nil
}

func (f *fakeQuoteStore) GetByID(_ context.Context, id uuid.UUID) (*models.Quote, error) {
	for i := range f.quotes {
		if f.quotes[i].ID == id {
			return &f.quotes[i], nil
		}
	}
	return nil, errNotFound
}

func (f *fakeQuoteStore) FindByRenewal(_ context.Context, renewalID uuid.UUID) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range f.quotes {
		if q.RenewalID == renewalID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuoteStore) SelectExclusive(_ context.Context, quoteID, renewalID uuid.UUID) error {
	found := false
	for i := range f.quotes {
		if f.quotes[i].RenewalID != renewalID {
			continue
		}
		if f.quotes[i].ID == quoteID {
			f.quotes[i].IsSelected = true
			f.quotes[i].Status = models.QuoteSelected
			found = true
		} else {
			f.quotes[i].IsSelected = false
			f.quotes[i].Status = models.QuoteReceived
		}
	}
	if !found {
		return errNotFound
	}
	return nil
}

type fakeActivityLog struct {
	entries []models.Activity
	err     error
}

func (f *fakeActivityLog) Append(_ context.Context, activity *models.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *activity)
	return nil
}

type fakeNotifier struct {
	created int
	err     error
}

func (f *fakeNotifier) NotifyRenewalCreated(_ context.Context, _ *models.Renewal, _ *models.Policy) error {
	if f.err != nil {
		return f.err
	}
	f.created++
	return nil
}

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var errNotFound = notFoundError{}
