package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Quote struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	RenewalID          uuid.UUID        `json:"renewal_id" db:"renewal_id"`
	Carrier            string           `json:"carrier" db:"carrier"`
	Premium            decimal.Decimal  `json:"premium" db:"premium"`
	CoverageLimit      decimal.Decimal  `json:"coverage_limit" db:"coverage_limit"`
	Deductible         decimal.Decimal  `json:"deductible" db:"deductible"`
	PerOccurrenceLimit *decimal.Decimal `json:"per_occurrence_limit,omitempty" db:"per_occurrence_limit"`
	AggregateLimit     *decimal.Decimal `json:"aggregate_limit,omitempty" db:"aggregate_limit"`
	Exclusions         pq.StringArray   `json:"exclusions" db:"exclusions"`
	Endorsements       pq.StringArray   `json:"endorsements" db:"endorsements"`
	PriceChange        *decimal.Decimal `json:"price_change,omitempty" db:"price_change"`
	IsSelected         bool             `json:"is_selected" db:"is_selected"`
	Status             QuoteStatus      `json:"status" db:"status"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}
