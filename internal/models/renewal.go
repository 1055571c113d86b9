package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Renewal struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	PolicyID       uuid.UUID      `json:"policy_id" db:"policy_id"`
	ClientID       uuid.UUID      `json:"client_id" db:"client_id"`
	DueDate        time.Time      `json:"due_date" db:"due_date"`
	Status         RenewalStatus  `json:"status" db:"status"`
	RiskLevel      RiskLevel      `json:"risk_level" db:"risk_level"`
	RiskFactors    pq.StringArray `json:"risk_factors" db:"risk_factors"`
	Insights       pq.StringArray `json:"insights" db:"insights"`
	QuotesReceived int            `json:"quotes_received" db:"quotes_received"`
	EmailsSent     int            `json:"emails_sent" db:"emails_sent"`
	LastTouchedAt  time.Time      `json:"last_touched_at" db:"last_touched_at"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// EscalationCandidate is the joined row shape the repository hydrates when
// looking for renewals that may need broker attention. The escalation
// service applies the qualification rules on top of it.
type EscalationCandidate struct {
	RenewalID        uuid.UUID     `json:"renewal_id" db:"renewal_id"`
	ClientName       string        `json:"client_name" db:"client_name"`
	PolicyType       PolicyType    `json:"policy_type" db:"policy_type"`
	DueDate          time.Time     `json:"due_date" db:"due_date"`
	Status           RenewalStatus `json:"status" db:"status"`
	RiskLevel        RiskLevel     `json:"risk_level" db:"risk_level"`
	QuotesReceived   int           `json:"quotes_received" db:"quotes_received"`
	LastTouchedAt    time.Time     `json:"last_touched_at" db:"last_touched_at"`
	OverdueTaskCount int           `json:"overdue_task_count" db:"overdue_task_count"`
}
