package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	RenewalID   uuid.UUID    `json:"renewal_id" db:"renewal_id"`
	Name        string       `json:"name" db:"name"`
	Description *string      `json:"description,omitempty" db:"description"`
	DueDate     time.Time    `json:"due_date" db:"due_date"`
	Status      TaskStatus   `json:"status" db:"status"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	Category    TaskCategory `json:"category" db:"category"`
	TaskOrder   int          `json:"task_order" db:"task_order"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// TaskTemplate is a reusable workflow step definition. PolicyType nil means
// the template applies system-wide rather than to one line of business.
type TaskTemplate struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	Description   *string      `json:"description,omitempty" db:"description"`
	PolicyType    *PolicyType  `json:"policy_type,omitempty" db:"policy_type"`
	Category      TaskCategory `json:"category" db:"category"`
	Priority      TaskPriority `json:"priority" db:"priority"`
	DaysBeforeDue int          `json:"days_before_due" db:"days_before_due"`
	TemplateOrder int          `json:"template_order" db:"template_order"`
	Active        bool         `json:"active" db:"active"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}
