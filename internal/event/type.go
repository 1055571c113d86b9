package event

import (
	"time"

	"github.com/google/uuid"
)

// RenewalEventsQueue carries renewal lifecycle events for the notification
// consumer.
const RenewalEventsQueue string = "renewal_events"

// Renewal lifecycle event types.
const (
	EventRenewalCreated   = "renewal.created"
	EventRenewalEscalated = "renewal.escalated"
)

// RenewalEventModel is the wire shape for a renewal lifecycle event. The
// notification consumer turns these into broker-facing emails and pushes.
type RenewalEventModel struct {
	EventType    string    `json:"event_type"`
	RenewalID    uuid.UUID `json:"renewal_id"`
	PolicyID     uuid.UUID `json:"policy_id"`
	ClientID     uuid.UUID `json:"client_id"`
	PolicyNumber string    `json:"policy_number"`
	PolicyType   string    `json:"policy_type"`
	Carrier      string    `json:"carrier"`
	RiskLevel    string    `json:"risk_level"`
	DueDate      time.Time `json:"due_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EscalationEventModel is the wire shape for one escalated renewal inside a
// renewal.escalated batch message.
type EscalationEventModel struct {
	RenewalID        uuid.UUID `json:"renewal_id"`
	ClientName       string    `json:"client_name"`
	PolicyType       string    `json:"policy_type"`
	DaysUntilDue     int       `json:"days_until_due"`
	RiskLevel        string    `json:"risk_level"`
	Reason           string    `json:"reason"`
	OverdueTaskCount int       `json:"overdue_task_count"`
}

// EscalationBatchModel wraps one scheduler pass worth of escalations.
type EscalationBatchModel struct {
	EventType   string                 `json:"event_type"`
	Escalations []EscalationEventModel `json:"escalations"`
	OccurredAt  time.Time              `json:"occurred_at"`
}
