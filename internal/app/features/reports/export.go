// internal/app/features/reports/export.go
package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// exportFormat describes one supported export renderer.
type exportFormat struct {
	ext         string
	contentType string
	render      func(buf *bytes.Buffer, header []string, rows [][]string) error
}

var exportFormats = map[string]exportFormat{
	"csv":   {ext: "csv", contentType: "text/csv; charset=utf-8", render: renderCSV},
	"excel": {ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", render: renderExcel},
	"pdf":   {ext: "pdf", contentType: "application/pdf", render: renderPDF},
}

// ServeExport handles GET /api/reports/export?format=csv|excel|pdf.
//
// A missing or unrecognized format is rejected up front; nothing is
// rendered until the full snapshot is in hand, so a store or render
// failure produces an error response instead of a truncated file.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	format, ok := exportFormats[strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))]
	if !ok {
		uierrors.WriteValidation(w, `format must be one of "csv", "excel", "pdf"`)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "task export")
	defer cancel()

	tasks, err := h.Tasks.Find(ctx, taskstore.Filter{})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch tasks for export failed", err, "A database error occurred.")
		return
	}

	// Resolve assignee names in one batch.
	idSet := make(map[primitive.ObjectID]struct{})
	for _, t := range tasks {
		if t.AssignedTo != nil {
			idSet[*t.AssignedTo] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	names, err := h.Users.NamesByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve assignee names failed", err, "A database error occurred.")
		return
	}

	rows := BuildExportRows(tasks, names)

	var buf bytes.Buffer
	if err := format.render(&buf, ExportHeader(), rows); err != nil {
		h.ErrLog.LogServerError(w, r, "render export failed", err, "Export rendering failed.")
		return
	}

	filename := fmt.Sprintf("tasks_report_%s.%s", time.Now().Format("20060102"), format.ext)
	w.Header().Set("Content-Type", format.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if _, err := buf.WriteTo(w); err != nil {
		h.Log.Error("export write failed", zap.Error(err))
		return
	}

	h.Log.Info("tasks exported",
		zap.String("format", format.ext),
		zap.Int("rows", len(rows)),
	)
}
