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
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// ErrRenewalExists is returned when the open-renewal uniqueness gate in the
// database rejects a create. Callers treat it as a precondition skip, not a
// failure.
var ErrRenewalExists = errors.New("an open renewal already exists for this policy")

const openLockTTL = 30 * time.Second

type RenewalRepository struct {
	db          *sqlx.DB
	redisClient *redis.Client
}

func NewRenewalRepository(db *sqlx.DB, redisClient *redis.Client) *RenewalRepository {
	return &RenewalRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// AcquireOpenLock takes a short-lived per-policy lock so concurrent scan
// invocations do not race the blocking-renewal check. The partial unique
// index on renewals is the authoritative gate; the lock just avoids churning
// on it.
func (r *RenewalRepository) AcquireOpenLock(ctx context.Context, policyID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("renewal:open_lock:%s", policyID)
	ok, err := r.redisClient.SetNX(ctx, key, time.Now().Unix(), openLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire open lock: %w", err)
	}
	return ok, nil
}

func (r *RenewalRepository) ReleaseOpenLock(ctx context.Context, policyID uuid.UUID) {
	key := fmt.Sprintf("renewal:open_lock:%s", policyID)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		slog.Warn("Failed to release open lock", "policy_id", policyID, "error", err)
	}
}

func (r *RenewalRepository) HasBlockingRenewal(ctx context.Context, policyID uuid.UUID) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM renewals
		WHERE policy_id = $1 AND status IN ('pending', 'in_progress', 'quoted')`

	if err := r.db.GetContext(ctx, &count, query, policyID); err != nil {
		return false, fmt.Errorf("failed to check blocking renewal: %w", err)
	}
	return count > 0, nil
}

func (r *RenewalRepository) Create(ctx context.Context, renewal *models.Renewal) error {
	slog.Info("Creating renewal",
		"renewal_id", renewal.ID,
		"policy_id", renewal.PolicyID,
		"risk_level", renewal.RiskLevel)

	renewal.CreatedAt = time.Now()
	renewal.UpdatedAt = renewal.CreatedAt
	renewal.LastTouchedAt = renewal.CreatedAt

	query := `
		INSERT INTO renewals (
			id, policy_id, client_id, due_date, status, risk_level, risk_factors,
			insights, quotes_received, emails_sent, last_touched_at, created_at, updated_at
		) VALUES (
			:id, :policy_id, :client_id, :due_date, :status, :risk_level, :risk_factors,
			:insights, :quotes_received, :emails_sent, :last_touched_at, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, renewal); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRenewalExists
		}
		slog.Error("Failed to create renewal",
			"renewal_id", renewal.ID,
			"policy_id", renewal.PolicyID,
			"error", err)
		return fmt.Errorf("failed to create renewal: %w", err)
	}
	return nil
}

func (r *RenewalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Renewal, error) {
	var renewal models.Renewal
	query := `SELECT * FROM renewals WHERE id = $1`

	if err := r.db.GetContext(ctx, &renewal, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("renewal %s not found", id)
		}
		return nil, fmt.Errorf("failed to get renewal: %w", err)
	}
	return &renewal, nil
}

func (r *RenewalRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]models.Renewal, error) {
	var renewals []models.Renewal
	query := `SELECT * FROM renewals WHERE client_id = $1 ORDER BY due_date ASC`

	if err := r.db.SelectContext(ctx, &renewals, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to find renewals for client %s: %w", clientID, err)
	}
	return renewals, nil
}

func (r *RenewalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RenewalStatus) error {
	query := `
		UPDATE renewals
		SET status = $2, last_touched_at = NOW(), updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update renewal status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("renewal %s not found", id)
	}
	return nil
}

// Touch records activity on a renewal without changing its status.
func (r *RenewalRepository) Touch(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE renewals SET last_touched_at = NOW(), updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch renewal: %w", err)
	}
	return nil
}

func (r *RenewalRepository) IncrementQuotesReceived(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE renewals
		SET quotes_received = quotes_received + 1, last_touched_at = NOW(), updated_at = NOW()
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment quotes received: %w", err)
	}
	return nil
}

func (r *RenewalRepository) IncrementEmailsSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE renewals
		SET emails_sent = emails_sent + 1, last_touched_at = NOW(), updated_at = NOW()
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment emails sent: %w", err)
	}
	return nil
}

// ListEscalationCandidates returns open renewals due on or before windowEnd,
// joined with the client display name and the count of currently-overdue
// tasks. The escalation service applies the qualification rules on top.
func (r *RenewalRepository) ListEscalationCandidates(ctx context.Context, windowEnd time.Time) ([]models.EscalationCandidate, error) {
	var candidates []models.EscalationCandidate
	query := `
		SELECT
			r.id AS renewal_id,
			c.company_name AS client_name,
			p.policy_type AS policy_type,
			r.due_date AS due_date,
			r.status AS status,
			r.risk_level AS risk_level,
			r.quotes_received AS quotes_received,
			r.last_touched_at AS last_touched_at,
			(SELECT COUNT(*) FROM tasks t
				WHERE t.renewal_id = r.id AND t.status = 'overdue') AS overdue_task_count
		FROM renewals r
		JOIN policies p ON p.id = r.policy_id
		JOIN clients c ON c.id = r.client_id
		WHERE r.status IN ('pending', 'in_progress')
		  AND r.due_date <= $1
		ORDER BY r.due_date ASC`

	if err := r.db.SelectContext(ctx, &candidates, query, windowEnd); err != nil {
		return nil, fmt.Errorf("failed to list escalation candidates: %w", err)
	}
	return candidates, nil
}
