package repository

import (
	"context"
	"fmt"
	"time"

	"renewal-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// ActivityRepository is append-only; the engine never reads activities back.
type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, activity *models.Activity) error {
	activity.CreatedAt = time.Now()

	query := `
		INSERT INTO activities (id, client_id, renewal_id, type, description, created_at)
		VALUES (:id, :client_id, :renewal_id, :type, :description, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}
