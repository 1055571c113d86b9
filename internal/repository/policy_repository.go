package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PolicyRepository struct {
	db *sqlx.DB
}

func NewPolicyRepository(db *sqlx.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) Create(ctx context.Context, policy *models.Policy) error {
	policy.CreatedAt = time.Now()
	policy.UpdatedAt = policy.CreatedAt

	query := `
		INSERT INTO policies (
			id, client_id, policy_number, carrier, policy_type, premium,
			coverage_limit, expiration_date, status, created_at, updated_at
		) VALUES (
			:id, :client_id, :policy_number, :carrier, :policy_type, :premium,
			:coverage_limit, :expiration_date, :status, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, policy); err != nil {
		slog.Error("Failed to create policy", "policy_number", policy.PolicyNumber, "error", err)
		return fmt.Errorf("failed to create policy: %w", err)
	}
	return nil
}

func (r *PolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	var policy models.Policy
	query := `SELECT * FROM policies WHERE id = $1`

	if err := r.db.GetContext(ctx, &policy, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("policy %s not found", id)
		}
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return &policy, nil
}

// FindExpiringActive returns active policies expiring on or before windowEnd
// that have no open renewal. The opener re-checks the open-renewal
// precondition per candidate; this filter just keeps the scan cheap.
func (r *PolicyRepository) FindExpiringActive(ctx context.Context, windowEnd time.Time) ([]models.Policy, error) {
	start := time.Now()
	var policies []models.Policy
	query := `
		SELECT p.* FROM policies p
		WHERE p.status = 'active'
		  AND p.expiration_date <= $1
		  AND NOT EXISTS (
			SELECT 1 FROM renewals r
			WHERE r.policy_id = p.id
			  AND r.status IN ('pending', 'in_progress', 'quoted')
		  )
		ORDER BY p.expiration_date ASC`

	if err := r.db.SelectContext(ctx, &policies, query, windowEnd); err != nil {
		slog.Error("Failed to find expiring policies", "window_end", windowEnd, "error", err)
		return nil, fmt.Errorf("failed to find expiring policies: %w", err)
	}

	slog.Info("Found expiring policies without open renewal",
		"count", len(policies),
		"window_end", windowEnd,
		"duration", time.Since(start))
	return policies, nil
}

func (r *PolicyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PolicyStatus) error {
	query := `UPDATE policies SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update policy status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("policy %s not found", id)
	}
	return nil
}
