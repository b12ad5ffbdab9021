package taskview

import (
	"math"
	"time"

	"github.com/taskpilot/taskpilot-api/internal/models"
)

// DayActivity counts tasks created and completed on one calendar date.
type DayActivity struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// Analytics is the locally derived dashboard data: the stats mirror plus
// priority/category distributions and a trailing-7-day activity trend.
type Analytics struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	Overdue        int            `json:"overdue"`
	CompletionRate int            `json:"completionRate"`
	ByPriority     map[string]int `json:"by_priority"`
	ByCategory     map[string]int `json:"by_category"`
	Trend          []DayActivity  `json:"trend"`
}

const trendDays = 7

// Compute derives analytics from a task slice by direct iteration.
func Compute(tasks []models.Task, now time.Time) Analytics {
	analytics := Analytics{
		Total:      len(tasks),
		ByPriority: make(map[string]int),
		ByCategory: make(map[string]int),
	}

	trend := make([]DayActivity, trendDays)
	trendIndex := make(map[string]int, trendDays)
	start := now.AddDate(0, 0, -(trendDays - 1))
	for i := 0; i < trendDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		trend[i] = DayActivity{Date: date}
		trendIndex[date] = i
	}

	for i := range tasks {
		t := &tasks[i]
		if t.IsCompleted() {
			analytics.Completed++
		} else {
			analytics.Pending++
		}
		if t.IsOverdue(now) {
			analytics.Overdue++
		}
		analytics.ByPriority[string(t.Priority)]++
		analytics.ByCategory[string(t.Category)]++

		if idx, ok := trendIndex[t.CreatedAt.Format("2006-01-02")]; ok {
			trend[idx].Created++
		}
		if t.CompletedAt != nil {
			if idx, ok := trendIndex[t.CompletedAt.Format("2006-01-02")]; ok {
				trend[idx].Completed++
			}
		}
	}

	if analytics.Total > 0 {
		analytics.CompletionRate = int(math.Round(float64(analytics.Completed) / float64(analytics.Total) * 100))
	}
	analytics.Trend = trend

	return analytics
}
