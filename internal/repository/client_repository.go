package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ClientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	query := `
		INSERT INTO clients (
			id, company_name, contact_name, email, phone, created_at, updated_at
		) VALUES (
			:id, :company_name, :contact_name, :email, :phone, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	query := `SELECT * FROM clients WHERE id = $1`

	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %s not found", id)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}
