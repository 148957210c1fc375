// internal/app/features/reports/performance.go
package reports

import (
	"net/http"
	"time"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// maxPerfFanout bounds the number of concurrent per-member task queries.
const maxPerfFanout = 8

// ServeTeamPerformance handles GET /api/reports/team-members.
//
// Per-member metrics have no ordering dependency on each other, so each
// member's task snapshot is fetched and folded concurrently and the rows
// are joined before the roll-up. Each row lands in its own slice slot, so
// there is no shared accumulator; a failure on any member fails the whole
// request (reports are all-or-nothing, never partial).
func (h *Handler) ServeTeamPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "team performance report")
	defer cancel()

	members, err := h.Users.FindByRole(ctx, models.RoleTeamMember)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list team members failed", err, "A database error occurred.")
		return
	}

	now := time.Now()
	rows := make([]MemberPerformance, len(members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPerfFanout)
	for i, m := range members {
		g.Go(func() error {
			tasks, err := h.Tasks.Find(gctx, taskstore.Filter{AssignedTo: &m.ID})
			if err != nil {
				return err
			}
			rows[i] = ComputeMemberPerformance(m, tasks, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.ErrLog.LogServerError(w, r, "member performance query failed", err, "A database error occurred.")
		return
	}

	// FindByRole sorts by folded name and each row keeps its member's
	// index, so the joined slice is already name-ordered.
	uierrors.WriteJSON(w, http.StatusOK, TeamPerformanceReport{
		Members: rows,
		Rollup:  RollupTeam(rows),
	})
}
