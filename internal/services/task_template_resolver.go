package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
)

// TaskTemplateResolver selects the checklist templates to instantiate for a
// policy type: operator-defined templates when any exist, otherwise the
// built-in default set supplied at construction. The fallback is
// all-or-nothing; a partial custom set never merges with the defaults.
type TaskTemplateResolver struct {
	templates TaskTemplateStore
	defaults  []models.TaskTemplate
}

func NewTaskTemplateResolver(templates TaskTemplateStore, defaults []models.TaskTemplate) *TaskTemplateResolver {
	return &TaskTemplateResolver{
		templates: templates,
		defaults:  defaults,
	}
}

func (r *TaskTemplateResolver) Resolve(ctx context.Context, policyType models.PolicyType) ([]models.TaskTemplate, error) {
	custom, err := r.templates.FindActive(ctx, policyType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve templates for %s: %w", policyType, err)
	}

	if len(custom) > 0 {
		return custom, nil
	}

	slog.Debug("No custom templates defined, using default checklist",
		"policy_type", policyType,
		"default_count", len(r.defaults))
	return r.defaults, nil
}

// BuildTasks instantiates one task per template against a renewal's due
// date. Each task comes due daysBeforeDue days ahead of the renewal;
// missing priority or category fall back to medium/other. A template
// without a name is a validation error and fails the whole build.
func (r *TaskTemplateResolver) BuildTasks(renewalID uuid.UUID, renewalDueDate time.Time, templates []models.TaskTemplate) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(templates))

	for _, tpl := range templates {
		if tpl.Name == "" {
			return nil, fmt.Errorf("task template %s has no name", tpl.ID)
		}

		priority := tpl.Priority
		if priority == "" {
			priority = models.TaskPriorityMedium
		}
		category := tpl.Category
		if category == "" {
			category = models.CategoryOther
		}

		tasks = append(tasks, models.Task{
			ID:          uuid.New(),
			RenewalID:   renewalID,
			Name:        tpl.Name,
			Description: tpl.Description,
			DueDate:     renewalDueDate.AddDate(0, 0, -tpl.DaysBeforeDue),
			Status:      models.TaskPending,
			Priority:    priority,
			Category:    category,
			TaskOrder:   tpl.TemplateOrder,
		})
	}

	return tasks, nil
}
