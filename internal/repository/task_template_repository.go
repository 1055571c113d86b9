package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"renewal-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const templateCacheTTL = 5 * time.Minute

type TaskTemplateRepository struct {
	db          *sqlx.DB
	redisClient *redis.Client
}

func NewTaskTemplateRepository(db *sqlx.DB, redisClient *redis.Client) *TaskTemplateRepository {
	return &TaskTemplateRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// FindActive returns active templates scoped to the given policy type or
// system-wide, in template order. Results are cached briefly per policy
// type; template edits are rare and a stale read only delays a checklist
// change by minutes.
func (r *TaskTemplateRepository) FindActive(ctx context.Context, policyType models.PolicyType) ([]models.TaskTemplate, error) {
	cacheKey := fmt.Sprintf("task_templates:active:%s", policyType)

	if cached, err := r.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
		var templates []models.TaskTemplate
		if err := json.Unmarshal(cached, &templates); err == nil {
			return templates, nil
		}
		slog.Warn("Discarding unreadable template cache entry", "key", cacheKey)
	}

	var templates []models.TaskTemplate
	query := `
		SELECT * FROM task_templates
		WHERE active = true AND (policy_type = $1 OR policy_type IS NULL)
		ORDER BY template_order ASC`

	if err := r.db.SelectContext(ctx, &templates, query, policyType); err != nil {
		return nil, fmt.Errorf("failed to find active templates for %s: %w", policyType, err)
	}

	if body, err := json.Marshal(templates); err == nil {
		if err := r.redisClient.Set(ctx, cacheKey, body, templateCacheTTL).Err(); err != nil {
			slog.Warn("Failed to cache task templates", "key", cacheKey, "error", err)
		}
	}

	return templates, nil
}

func (r *TaskTemplateRepository) Create(ctx context.Context, template *models.TaskTemplate) error {
	template.CreatedAt = time.Now()
	template.UpdatedAt = template.CreatedAt

	query := `
		INSERT INTO task_templates (
			id, name, description, policy_type, category, priority,
			days_before_due, template_order, active, created_at, updated_at
		) VALUES (
			:id, :name, :description, :policy_type, :category, :priority,
			:days_before_due, :template_order, :active, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, template); err != nil {
		return fmt.Errorf("failed to create task template: %w", err)
	}

	r.invalidateCache(ctx, template.PolicyType)
	return nil
}

func (r *TaskTemplateRepository) invalidateCache(ctx context.Context, policyType *models.PolicyType) {
	// A system-wide template affects every policy type's resolution.
	pattern := "task_templates:active:*"
	if policyType != nil {
		pattern = fmt.Sprintf("task_templates:active:%s", *policyType)
	}

	iter := r.redisClient.Scan(ctx, 0, pattern, 50).Iterator()
	for iter.Next(ctx) {
		if err := r.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("Failed to invalidate template cache", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Template cache invalidation scan failed", "error", err)
	}
}
