package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Client struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CompanyName string    `json:"company_name" db:"company_name"`
	ContactName *string   `json:"contact_name,omitempty" db:"contact_name"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Policy struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	ClientID       uuid.UUID       `json:"client_id" db:"client_id"`
	PolicyNumber   string          `json:"policy_number" db:"policy_number"`
	Carrier        string          `json:"carrier" db:"carrier"`
	PolicyType     PolicyType      `json:"policy_type" db:"policy_type"`
	Premium        decimal.Decimal `json:"premium" db:"premium"`
	CoverageLimit  decimal.Decimal `json:"coverage_limit" db:"coverage_limit"`
	ExpirationDate time.Time       `json:"expiration_date" db:"expiration_date"`
	Status         PolicyStatus    `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
