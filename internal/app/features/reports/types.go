// internal/app/features/reports/types.go
package reports

// Each report kind has an explicit result type so the payload contract is
// checkable at compile time instead of growing ad hoc fields.

// TaskReport is the status & category summary: flat scalar counts plus two
// label -> count maps. The four status scalars partition totalTasks; the
// priority map is pre-seeded with all known labels, the category map is
// free-form and only carries labels that occur.
type TaskReport struct {
	TotalTasks     int            `json:"totalTasks"`
	CompletedTasks int            `json:"completedTasks"`
	OngoingTasks   int            `json:"ongoingTasks"`
	PendingTasks   int            `json:"pendingTasks"`
	OnHoldTasks    int            `json:"onHoldTasks"`
	OverdueTasks   int            `json:"overdueTasks"`
	ByPriority     map[string]int `json:"byPriority"`
	ByCategory     map[string]int `json:"byCategory"`
}

// MemberPerformance is one team member's derived metrics. CompletionRate is
// completed/total x 100 rounded to two decimals, and 0 when the member has
// no tasks at all.
type MemberPerformance struct {
	MemberID              string  `json:"memberId"`
	Name                  string  `json:"name"`
	Email                 string  `json:"email"`
	TotalTasks            int     `json:"totalTasks"`
	CompletedTasks        int     `json:"completedTasks"`
	InProgressTasks       int     `json:"inProgressTasks"`
	PendingTasks          int     `json:"pendingTasks"`
	OnHoldTasks           int     `json:"onHoldTasks"`
	OverdueTasks          int     `json:"overdueTasks"`
	CompletionRate        float64 `json:"completionRate"`
	CompletionRateDisplay string  `json:"completionRateDisplay"`
}

// TeamRollup aggregates across members. AverageCompletionRate is the plain
// arithmetic mean of per-member rates, not weighted by task count.
type TeamRollup struct {
	TotalMembers          int     `json:"totalMembers"`
	TotalTasks            int     `json:"totalTasks"`
	CompletedTasks        int     `json:"completedTasks"`
	OverdueTasks          int     `json:"overdueTasks"`
	AverageCompletionRate float64 `json:"averageCompletionRate"`
	AverageRateDisplay    string  `json:"averageRateDisplay"`
}

// TeamPerformanceReport is the full per-member performance payload.
type TeamPerformanceReport struct {
	Members []MemberPerformance `json:"teamPerformance"`
	Rollup  TeamRollup          `json:"rollup"`
}

// ProductivityBucket is one calendar day's creation/completion tally.
//
// TasksCompleted counts tasks created that day whose *current* status is
// Completed; the historical completion timestamp is not tracked, so a task
// completed on a later day still counts against its creation day. Known
// limitation, kept for compatibility with existing consumers.
type ProductivityBucket struct {
	Date           string `json:"date"` // YYYY-MM-DD
	TasksCreated   int    `json:"tasksCreated"`
	TasksCompleted int    `json:"tasksCompleted"`
}

// ProductivityReport is the date-windowed productivity payload. Buckets are
// ascending by date and cover exactly the distinct creation dates present
// in range; days with zero tasks are absent.
type ProductivityReport struct {
	StartDate string               `json:"startDate"`
	EndDate   string               `json:"endDate"`
	Buckets   []ProductivityBucket `json:"buckets"`
}
