// Package taskview holds the presentation-side task list logic: filtering,
// sorting and locally derived analytics. Everything here is a pure function
// over an already-fetched task slice.
package taskview

import (
	"strings"

	"github.com/taskpilot/taskpilot-api/internal/models"
)

// Filter describes the task list predicates. Empty or "all" values disable
// the corresponding predicate; active predicates are ANDed.
type Filter struct {
	Search   string
	Status   string
	Priority string
	Category string
}

// Apply returns the tasks matching every active predicate, preserving input
// order.
func (f Filter) Apply(tasks []models.Task) []models.Task {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if !matchesValue(f.Status, string(t.Status)) {
			continue
		}
		if !matchesValue(f.Priority, string(t.Priority)) {
			continue
		}
		if !matchesValue(f.Category, string(t.Category)) {
			continue
		}
		result = append(result, *t)
	}
	return result
}

// matchesSearch does a case-insensitive substring match on title or
// description.
func matchesSearch(t *models.Task, search string) bool {
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

func matchesValue(want, have string) bool {
	return want == "" || want == "all" || want == have
}
