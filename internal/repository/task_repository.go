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

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateMany inserts a renewal's full checklist in one transaction so a
// renewal never ends up with a partial set of tasks.
func (r *TaskRepository) CreateMany(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin task transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (
			id, renewal_id, name, description, due_date, status, priority,
			category, task_order, created_at, updated_at
		) VALUES (
			:id, :renewal_id, :name, :description, :due_date, :status, :priority,
			:category, :task_order, :created_at, :updated_at
		)`

	now := time.Now()
	for i := range tasks {
		tasks[i].CreatedAt = now
		tasks[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, tasks[i]); err != nil {
			slog.Error("Failed to create task",
				"renewal_id", tasks[i].RenewalID,
				"name", tasks[i].Name,
				"error", err)
			return fmt.Errorf("failed to create task %q: %w", tasks[i].Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task creation: %w", err)
	}

	slog.Info("Created renewal tasks", "renewal_id", tasks[0].RenewalID, "count", len(tasks))
	return nil
}

// MarkOverdue transitions every open task due strictly before the cutoff
// into the overdue state. The predicate excludes tasks already overdue, so
// repeated sweeps are no-ops.
func (r *TaskRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE tasks
		SET status = 'overdue', updated_at = NOW()
		WHERE due_date < $1 AND status IN ('pending', 'in_progress')`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to mark tasks overdue: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) FindByRenewal(ctx context.Context, renewalID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	query := `SELECT * FROM tasks WHERE renewal_id = $1 ORDER BY task_order ASC`

	if err := r.db.SelectContext(ctx, &tasks, query, renewalID); err != nil {
		return nil, fmt.Errorf("failed to find tasks for renewal %s: %w", renewalID, err)
	}
	return tasks, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	var completedAt *time.Time
	if status == models.TaskCompleted {
		now := time.Now()
		completedAt = &now
	}

	var task models.Task
	query := `
		UPDATE tasks
		SET status = $2, completed_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	if err := r.db.GetContext(ctx, &task, query, id, status, completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s not found", id)
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return &task, nil
}
