package taskview

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taskpilot/taskpilot-api/internal/models"
)

// Sort keys accepted by SortTasks.
const (
	SortByDueDate   = "due_date"
	SortByPriority  = "priority"
	SortByTitle     = "title"
	SortByCreatedAt = "created_at"
)

// SortTasks sorts tasks in place by the given key. Sorts are stable so that
// equal elements keep their input order. Unknown keys leave the slice
// untouched.
func SortTasks(tasks []models.Task, key string) {
	switch key {
	case SortByDueDate:
		// Tasks without a due date sort strictly after all dated tasks.
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortByPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return models.PriorityRank(tasks[i].Priority) > models.PriorityRank(tasks[j].Priority)
		})
	case SortByTitle:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(tasks, func(i, j int) bool {
			return collator.CompareString(tasks[i].Title, tasks[j].Title) < 0
		})
	case SortByCreatedAt:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}
