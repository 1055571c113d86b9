package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only log entry for a state-changing event. The
// engine only ever writes these; nothing in this service reads them back.
type Activity struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	ClientID    *uuid.UUID   `json:"client_id,omitempty" db:"client_id"`
	RenewalID   *uuid.UUID   `json:"renewal_id,omitempty" db:"renewal_id"`
	Type        ActivityType `json:"type" db:"type"`
	Description string       `json:"description" db:"description"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
