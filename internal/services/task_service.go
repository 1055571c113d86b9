package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
)

// TaskService covers the checklist operations that run outside the opener:
// the overdue sweep and manual status transitions.
type TaskService struct {
	tasks    TaskStore
	renewals RenewalStore
	activity ActivityLog
	now      func() time.Time
}

func NewTaskService(tasks TaskStore, renewals RenewalStore, activity ActivityLog) *TaskService {
	return &TaskService{
		tasks:    tasks,
		renewals: renewals,
		activity: activity,
		now:      time.Now,
	}
}

// SweepOverdueTasks transitions every open task whose due date has passed
// into the overdue state and returns the number transitioned. Idempotent:
// an immediate second sweep transitions nothing.
func (s *TaskService) SweepOverdueTasks(ctx context.Context) (int64, error) {
	count, err := s.tasks.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("overdue sweep failed: %w", err)
	}

	if count > 0 {
		slog.Info("Swept tasks into overdue state", "count", count)
	}
	return count, nil
}

func (s *TaskService) ListRenewalTasks(ctx context.Context, renewalID uuid.UUID) ([]models.Task, error) {
	return s.tasks.FindByRenewal(ctx, renewalID)
}

// UpdateTaskStatus applies a manual status transition. Overdue is reserved
// for the sweeper; requesting it by hand is a validation error.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	switch status {
	case models.TaskPending, models.TaskInProgress, models.TaskCompleted, models.TaskSkipped:
	case models.TaskOverdue:
		return nil, fmt.Errorf("overdue is assigned by the sweep, not manually")
	default:
		return nil, fmt.Errorf("invalid task status %q", status)
	}

	task, err := s.tasks.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return nil, err
	}

	// Working a task counts as touching the renewal.
	if err := s.renewals.Touch(ctx, task.RenewalID); err != nil {
		slog.Warn("Failed to touch renewal after task update",
			"renewal_id", task.RenewalID, "error", err)
	}

	if status == models.TaskCompleted {
		renewalID := task.RenewalID
		if err := s.activity.Append(ctx, &models.Activity{
			ID:          uuid.New(),
			RenewalID:   &renewalID,
			Type:        models.ActivityTaskCompleted,
			Description: fmt.Sprintf("Task completed: %s", task.Name),
		}); err != nil {
			slog.Warn("Failed to log task completion", "task_id", task.ID, "error", err)
		}
	}

	return task, nil
}
