package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RunScanRequest struct {
	LookaheadDays int `json:"lookahead_days"`
}

type ScoreRiskRequest struct {
	PolicyType      PolicyType      `json:"policy_type"`
	Premium         decimal.Decimal `json:"premium"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
}

type SubmitQuoteRequest struct {
	Carrier            string           `json:"carrier"`
	Premium            decimal.Decimal  `json:"premium"`
	CoverageLimit      decimal.Decimal  `json:"coverage_limit"`
	Deductible         decimal.Decimal  `json:"deductible"`
	PerOccurrenceLimit *decimal.Decimal `json:"per_occurrence_limit,omitempty"`
	AggregateLimit     *decimal.Decimal `json:"aggregate_limit,omitempty"`
	Exclusions         []string         `json:"exclusions,omitempty"`
	Endorsements       []string         `json:"endorsements,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status"`
}

type UpdateRenewalStatusRequest struct {
	Status RenewalStatus `json:"status"`
}

type CreateClientRequest struct {
	CompanyName string  `json:"company_name"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

type RegisterPolicyRequest struct {
	ClientID       uuid.UUID       `json:"client_id"`
	PolicyNumber   string          `json:"policy_number"`
	Carrier        string          `json:"carrier"`
	PolicyType     PolicyType      `json:"policy_type"`
	Premium        decimal.Decimal `json:"premium"`
	CoverageLimit  decimal.Decimal `json:"coverage_limit"`
	ExpirationDate time.Time       `json:"expiration_date"`
}

type UpdatePolicyStatusRequest struct {
	Status PolicyStatus `json:"status"`
}

type CreateTemplateRequest struct {
	Name          string       `json:"name"`
	Description   *string      `json:"description,omitempty"`
	PolicyType    *PolicyType  `json:"policy_type,omitempty"`
	Category      TaskCategory `json:"category"`
	Priority      TaskPriority `json:"priority"`
	DaysBeforeDue int          `json:"days_before_due"`
	TemplateOrder int          `json:"template_order"`
}
