package taskview

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot-api/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{Title: "Write report", Description: "quarterly numbers", Status: models.TaskStatusPending,
			Priority: models.TaskPriorityHigh, Category: models.TaskCategoryWork},
		{Title: "Buy groceries", Description: "milk and eggs", Status: models.TaskStatusPending,
			Priority: models.TaskPriorityLow, Category: models.TaskCategoryPersonal},
		{Title: "Morning run", Description: "5k around the REPORTed route", Status: models.TaskStatusCompleted,
			Priority: models.TaskPriorityMedium, Category: models.TaskCategoryHealth},
	}
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestFilter_Empty(t *testing.T) {
	tasks := sampleTasks()
	require.Len(t, Filter{}.Apply(tasks), len(tasks))
}

func TestFilter_AllDisablesPredicate(t *testing.T) {
	tasks := sampleTasks()
	filtered := Filter{Status: "all", Priority: "all", Category: "all"}.Apply(tasks)
	require.Len(t, filtered, len(tasks))
}

func TestFilter_SearchMatchesTitleOrDescription(t *testing.T) {
	tasks := sampleTasks()

	// "report" hits "Write report" by title and "Morning run" by description,
	// case-insensitively.
	filtered := Filter{Search: "REPORT"}.Apply(tasks)
	require.Equal(t, []string{"Write report", "Morning run"}, titles(filtered))
}

func TestFilter_PredicatesAreANDed(t *testing.T) {
	tasks := sampleTasks()

	filtered := Filter{Search: "report", Status: "pending"}.Apply(tasks)
	require.Equal(t, []string{"Write report"}, titles(filtered))

	filtered = Filter{Search: "report", Status: "pending", Priority: "low"}.Apply(tasks)
	require.Empty(t, filtered)
}

func TestFilter_ByEnumFields(t *testing.T) {
	tasks := sampleTasks()

	require.Equal(t, []string{"Morning run"}, titles(Filter{Status: "completed"}.Apply(tasks)))
	require.Equal(t, []string{"Write report"}, titles(Filter{Priority: "high"}.Apply(tasks)))
	require.Equal(t, []string{"Buy groceries"}, titles(Filter{Category: "personal"}.Apply(tasks)))
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	tasks := sampleTasks()
	filtered := Filter{Status: "pending"}.Apply(tasks)
	require.Equal(t, []string{"Write report", "Buy groceries"}, titles(filtered))
}
