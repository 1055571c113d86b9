package services

import (
	"context"
	"fmt"
	"log/slog"

	"renewal-service/internal/models"

	"github.com/google/uuid"
)

// IntakeService handles the book-of-business writes that feed the engine:
// clients, policies and operator-defined task templates. The scanner only
// ever reads what lands here.
type IntakeService struct {
	clients   ClientStore
	policies  PolicyAdminStore
	templates TaskTemplateAdminStore
}

func NewIntakeService(clients ClientStore, policies PolicyAdminStore, templates TaskTemplateAdminStore) *IntakeService {
	return &IntakeService{
		clients:   clients,
		policies:  policies,
		templates: templates,
	}
}

func (s *IntakeService) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	if req.CompanyName == "" {
		return nil, fmt.Errorf("company_name is required")
	}

	client := &models.Client{
		ID:          uuid.New(),
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	slog.Info("Client created", "client_id", client.ID, "company", client.CompanyName)
	return client, nil
}

// RegisterPolicy adds a policy to the book. The policy enters as active and
// becomes a scan candidate once its expiration falls inside the lookahead
// window.
func (s *IntakeService) RegisterPolicy(ctx context.Context, req models.RegisterPolicyRequest) (*models.Policy, error) {
	if req.PolicyNumber == "" {
		return nil, fmt.Errorf("policy_number is required")
	}
	if req.Carrier == "" {
		return nil, fmt.Errorf("carrier is required")
	}
	if req.Premium.IsNegative() {
		return nil, fmt.Errorf("premium must not be negative")
	}
	if req.ExpirationDate.IsZero() {
		return nil, fmt.Errorf("expiration_date is required")
	}

	if _, err := s.clients.GetByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("client lookup failed: %w", err)
	}

	policy := &models.Policy{
		ID:             uuid.New(),
		ClientID:       req.ClientID,
		PolicyNumber:   req.PolicyNumber,
		Carrier:        req.Carrier,
		PolicyType:     req.PolicyType,
		Premium:        req.Premium,
		CoverageLimit:  req.CoverageLimit,
		ExpirationDate: req.ExpirationDate,
		Status:         models.PolicyActive,
	}
	if err := s.policies.Create(ctx, policy); err != nil {
		return nil, err
	}

	slog.Info("Policy registered",
		"policy_id", policy.ID,
		"policy_number", policy.PolicyNumber,
		"expiration_date", policy.ExpirationDate)
	return policy, nil
}

func (s *IntakeService) UpdatePolicyStatus(ctx context.Context, policyID uuid.UUID, status models.PolicyStatus) error {
	switch status {
	case models.PolicyActive, models.PolicyInactive, models.PolicyCancelled, models.PolicyExpired:
	default:
		return fmt.Errorf("invalid policy status %q", status)
	}
	return s.policies.UpdateStatus(ctx, policyID, status)
}

// CreateTemplate defines a workflow step. Once any active template exists
// for a policy type, the resolver uses the custom set instead of the
// built-in checklist.
func (s *IntakeService) CreateTemplate(ctx context.Context, req models.CreateTemplateRequest) (*models.TaskTemplate, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.DaysBeforeDue < 0 {
		return nil, fmt.Errorf("days_before_due must not be negative")
	}
	if req.TemplateOrder <= 0 {
		return nil, fmt.Errorf("template_order must be positive")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}

	template := &models.TaskTemplate{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		PolicyType:    req.PolicyType,
		Category:      category,
		Priority:      priority,
		DaysBeforeDue: req.DaysBeforeDue,
		TemplateOrder: req.TemplateOrder,
		Active:        true,
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, err
	}

	slog.Info("Task template created", "template_id", template.ID, "name", template.Name)
	return template, nil
}
