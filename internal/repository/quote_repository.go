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

type QuoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	quote.CreatedAt = time.Now()
	quote.UpdatedAt = quote.CreatedAt

	query := `
		INSERT INTO quotes (
			id, renewal_id, carrier, premium, coverage_limit, deductible,
			per_occurrence_limit, aggregate_limit, exclusions, endorsements,
			price_change, is_selected, status, created_at, updated_at
		) VALUES (
			:id, :renewal_id, :carrier, :premium, :coverage_limit, :deductible,
			:per_occurrence_limit, :aggregate_limit, :exclusions, :endorsements,
			:price_change, :is_selected, :status, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, quote); err != nil {
		slog.Error("Failed to create quote",
			"renewal_id", quote.RenewalID,
			"carrier", quote.Carrier,
			"error", err)
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	query := `SELECT * FROM quotes WHERE id = $1`

	if err := r.db.GetContext(ctx, &quote, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote %s not found", id)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &quote, nil
}

func (r *QuoteRepository) FindByRenewal(ctx context.Context, renewalID uuid.UUID) ([]models.Quote, error) {
	var quotes []models.Quote
	query := `SELECT * FROM quotes WHERE renewal_id = $1 ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &quotes, query, renewalID); err != nil {
		return nil, fmt.Errorf("failed to find quotes for renewal %s: %w", renewalID, err)
	}
	return quotes, nil
}

// SelectExclusive marks one quote as selected and clears the selection flag
// on every sibling in the same renewal, in a single transaction. A
// concurrent reader sees either the old selection or the new one, never
// both or neither mid-flight.
func (r *QuoteRepository) SelectExclusive(ctx context.Context, quoteID, renewalID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin selection transaction: %w", err)
	}
	defer tx.Rollback()

	clearQuery := `
		UPDATE quotes
		SET is_selected = false, status = 'received', updated_at = NOW()
		WHERE renewal_id = $1`
	if _, err := tx.ExecContext(ctx, clearQuery, renewalID); err != nil {
		return fmt.Errorf("failed to clear quote selections: %w", err)
	}

	selectQuery := `
		UPDATE quotes
		SET is_selected = true, status = 'selected', updated_at = NOW()
		WHERE id = $1 AND renewal_id = $2`
	result, err := tx.ExecContext(ctx, selectQuery, quoteID, renewalID)
	if err != nil {
		return fmt.Errorf("failed to select quote: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("quote %s not found on renewal %s", quoteID, renewalID)
	}

	renewalQuery := `
		UPDATE renewals
		SET status = 'quoted', last_touched_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'in_progress', 'quoted')`
	if _, err := tx.ExecContext(ctx, renewalQuery, renewalID); err != nil {
		return fmt.Errorf("failed to update renewal after selection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quote selection: %w", err)
	}

	slog.Info("Quote selected", "quote_id", quoteID, "renewal_id", renewalID)
	return nil
}
