// internal/app/features/reports/metrics.go
package reports

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The functions in this file are pure folds over task snapshots. They take
// "now" as a parameter so overdue detection is deterministic under test,
// and they never touch the stores.

const dayFormat = "2006-01-02"

// UnassignedLabel is rendered in exports when a task's assignee reference
// is absent or no longer resolves to a user.
const UnassignedLabel = "Unassigned"

// BuildTaskReport folds a task snapshot into the status & category summary.
func BuildTaskReport(tasks []models.Task, now time.Time) TaskReport {
	report := TaskReport{
		ByPriority: make(map[string]int, len(models.AllPriorities())),
		ByCategory: make(map[string]int),
	}
	for _, p := range models.AllPriorities() {
		report.ByPriority[p] = 0
	}

	for _, t := range tasks {
		report.TotalTasks++
		switch t.Status {
		case models.StatusCompleted:
			report.CompletedTasks++
		case models.StatusInProgress:
			report.OngoingTasks++
		case models.StatusPending:
			report.PendingTasks++
		case models.StatusOnHold:
			report.OnHoldTasks++
		}
		if t.IsOverdue(now) {
			report.OverdueTasks++
		}
		if t.Priority != "" {
			report.ByPriority[t.Priority]++
		}
		if t.Category != "" {
			report.ByCategory[t.Category]++
		}
	}
	return report
}

// ComputeMemberPerformance folds one member's assigned tasks into their
// performance row. The tasks slice must already be scoped to the member.
func ComputeMemberPerformance(m models.User, tasks []models.Task, now time.Time) MemberPerformance {
	perf := MemberPerformance{
		MemberID: m.ID.Hex(),
		Name:     m.Name,
		Email:    m.Email,
	}

	for _, t := range tasks {
		perf.TotalTasks++
		switch t.Status {
		case models.StatusCompleted:
			perf.CompletedTasks++
		case models.StatusInProgress:
			perf.InProgressTasks++
		case models.StatusPending:
			perf.PendingTasks++
		case models.StatusOnHold:
			perf.OnHoldTasks++
		}
		if t.IsOverdue(now) {
			perf.OverdueTasks++
		}
	}

	if perf.TotalTasks > 0 {
		perf.CompletionRate = round2(float64(perf.CompletedTasks) / float64(perf.TotalTasks) * 100)
	}
	perf.CompletionRateDisplay = rateDisplay(perf.CompletionRate)
	return perf
}

// RollupTeam reduces the completed per-member rows into the team aggregate.
// The average is the unweighted mean of the individual rates.
func RollupTeam(members []MemberPerformance) TeamRollup {
	rollup := TeamRollup{TotalMembers: len(members)}

	var rateSum float64
	for _, m := range members {
		rollup.TotalTasks += m.TotalTasks
		rollup.CompletedTasks += m.CompletedTasks
		rollup.OverdueTasks += m.OverdueTasks
		rateSum += m.CompletionRate
	}
	if len(members) > 0 {
		rollup.AverageCompletionRate = round2(rateSum / float64(len(members)))
	}
	rollup.AverageRateDisplay = rateDisplay(rollup.AverageCompletionRate)
	return rollup
}

// ProductivityBuckets groups a task snapshot by creation day and returns
// the buckets in ascending date order. Only days with at least one task
// appear; no zero-filled gaps are inserted.
func ProductivityBuckets(tasks []models.Task) []ProductivityBucket {
	byDay := make(map[string]*ProductivityBucket)
	for _, t := range tasks {
		day := t.CreatedAt.Format(dayFormat)
		b, ok := byDay[day]
		if !ok {
			b = &ProductivityBucket{Date: day}
			byDay[day] = b
		}
		b.TasksCreated++
		if t.Status == models.StatusCompleted {
			b.TasksCompleted++
		}
	}

	buckets := make([]ProductivityBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// ExportHeader returns the export column labels in their fixed order.
func ExportHeader() []string {
	return []string{
		"Task ID", "Title", "Description", "Status", "Priority",
		"Category", "Assigned To", "Due Date", "Progress",
	}
}

// BuildExportRows converts a task snapshot into export rows, one per task,
// resolving assignee names through the given lookup. A nil or unresolvable
// assignee renders the Unassigned placeholder; a nil due date renders as an
// empty string rather than rejecting the row.
func BuildExportRows(tasks []models.Task, names map[primitive.ObjectID]string) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		assignee := UnassignedLabel
		if t.AssignedTo != nil {
			if name, ok := names[*t.AssignedTo]; ok && name != "" {
				assignee = name
			}
		}

		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(dayFormat)
		}

		rows = append(rows, []string{
			t.ID.Hex(),
			t.Title,
			t.Description,
			t.Status,
			t.Priority,
			t.Category,
			assignee,
			due,
			fmt.Sprintf("%d%%", t.Progress),
		})
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func rateDisplay(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64) + "%"
}
