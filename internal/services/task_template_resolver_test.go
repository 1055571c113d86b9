package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST SUITE 1: TEMPLATE RESOLUTION
// ============================================================================

func TestResolve_CustomTemplatesUsedVerbatim(t *testing.T) {
	custom := []models.TaskTemplate{
		{
			ID:            uuid.New(),
			Name:          "Order cyber risk assessment",
			Category:      models.CategoryDataCollection,
			Priority:      models.TaskPriorityHigh,
			DaysBeforeDue: 60,
			TemplateOrder: 1,
			Active:        true,
		},
	}
	resolver := NewTaskTemplateResolver(&fakeTemplateStore{templates: custom}, models.DefaultTaskTemplates)

	resolved, err := resolver.Resolve(context.Background(), models.PolicyTypeCyberLiability)

	require.NoError(t, err)
	// All-or-nothing: a single custom template never merges with the
	// thirteen defaults.
	assert.Len(t, resolved, 1)
	assert.Equal(t, "Order cyber risk assessment", resolved[0].Name)
}

func TestResolve_FallsBackToDefaultSet(t *testing.T) {
	resolver := NewTaskTemplateResolver(&fakeTemplateStore{}, models.DefaultTaskTemplates)

	resolved, err := resolver.Resolve(context.Background(), models.PolicyTypeProperty)

	require.NoError(t, err)
	assert.Len(t, resolved, 13)
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	resolver := NewTaskTemplateResolver(&fakeTemplateStore{err: errors.New("db down")}, models.DefaultTaskTemplates)

	_, err := resolver.Resolve(context.Background(), models.PolicyTypeProperty)

	assert.Error(t, err)
}

// ============================================================================
// TEST SUITE 2: DEFAULT SET SHAPE
// ============================================================================

func TestDefaultTemplates_Shape(t *testing.T) {
	require.Len(t, models.DefaultTaskTemplates, 13)

	assert.Equal(t, 90, models.DefaultTaskTemplates[0].DaysBeforeDue)
	assert.Equal(t, 0, models.DefaultTaskTemplates[len(models.DefaultTaskTemplates)-1].DaysBeforeDue)

	for i := 1; i < len(models.DefaultTaskTemplates); i++ {
		prev := models.DefaultTaskTemplates[i-1]
		cur := models.DefaultTaskTemplates[i]
		assert.Greater(t, cur.TemplateOrder, prev.TemplateOrder, "orders must strictly increase")
		assert.LessOrEqual(t, cur.DaysBeforeDue, prev.DaysBeforeDue, "offsets must not increase")
		assert.True(t, cur.Active)
	}
}

// ============================================================================
// TEST SUITE 3: TASK INSTANTIATION
// ============================================================================

func TestBuildTasks_DueDateOffsets(t *testing.T) {
	resolver := NewTaskTemplateResolver(&fakeTemplateStore{}, models.DefaultTaskTemplates)
	renewalID := uuid.New()
	dueDate := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	tasks, err := resolver.BuildTasks(renewalID, dueDate, models.DefaultTaskTemplates)

	require.NoError(t, err)
	require.Len(t, tasks, 13)

	// First template sits 90 days ahead of the due date, the last on it.
	assert.Equal(t, dueDate.AddDate(0, 0, -90), tasks[0].DueDate)
	assert.Equal(t, dueDate, tasks[len(tasks)-1].DueDate)

	for i, task := range tasks {
		assert.Equal(t, renewalID, task.RenewalID)
		assert.Equal(t, models.TaskPending, task.Status)
		assert.Equal(t, models.DefaultTaskTemplates[i].TemplateOrder, task.TaskOrder)
	}
}

func TestBuildTasks_DefaultsPriorityAndCategory(t *testing.T) {
	resolver := NewTaskTemplateResolver(&fakeTemplateStore{}, nil)
	templates := []models.TaskTemplate{
		{ID: uuid.New(), Name: "Bare template", DaysBeforeDue: 10, TemplateOrder: 1},
	}

	tasks, err := resolver.BuildTasks(uuid.New(), time.Now(), templates)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskPriorityMedium, tasks[0].Priority)
	assert.Equal(t, models.CategoryOther, tasks[0].Category)
}

func TestBuildTasks_MissingNameFailsFast(t *testing.T) {
	resolver := NewTaskTemplateResolver(&fakeTemplateStore{}, nil)
	templates := []models.TaskTemplate{
		{ID: uuid.New(), Name: "", DaysBeforeDue: 10, TemplateOrder: 1},
	}

	tasks, err := resolver.BuildTasks(uuid.New(), time.Now(), templates)

	assert.Error(t, err)
	assert.Nil(t, tasks)
}
