package tasks_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	"github.com/nolanmercer/taskforge/internal/app/features/tasks"
	notificationstore "github.com/nolanmercer/taskforge/internal/app/store/notifications"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"github.com/nolanmercer/taskforge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*tasks.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	handler := tasks.NewHandler(taskstore.New(db), userstore.New(db), notificationstore.New(db), errLog, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func postJSON(user models.User, target, body string) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(req, user)
}

func TestServeCreate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")

	body := `{"title":"Ship the release","description":"Cut and tag","priority":"High","assignedTo":"` + alice.ID.Hex() + `"}`
	rec := httptest.NewRecorder()
	handler.ServeCreate(rec, postJSON(admin, "/api/tasks", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Title != "Ship the release" || created.Priority != models.PriorityHigh {
		t.Errorf("created: got %+v", created)
	}
	if created.Status != models.StatusPending {
		t.Errorf("default status: got %q, want %q", created.Status, models.StatusPending)
	}
	if created.AssignedTo == nil || *created.AssignedTo != alice.ID {
		t.Error("expected task assigned to Alice")
	}
	if created.CreatedBy != admin.ID {
		t.Errorf("CreatedBy: got %s, want %s", created.CreatedBy.Hex(), admin.ID.Hex())
	}

	// Assignment produces a notification for the assignee.
	notes, err := notificationstore.New(fixtures.DB()).ListForUser(ctx, alice.ID, 10)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(notes) != 1 || !strings.Contains(notes[0].Message, "Ship the release") {
		t.Errorf("notifications: got %+v, want one mentioning the task", notes)
	}
}

func TestServeCreate_Validation(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing title", `{"description":"no title"}`, http.StatusBadRequest},
		{"html-only title", `{"title":"<script>alert(1)</script>"}`, http.StatusBadRequest},
		{"bad assignee hex", `{"title":"T","assignedTo":"nonsense"}`, http.StatusBadRequest},
		{"unknown assignee", `{"title":"T","assignedTo":"` + primitive.NewObjectID().Hex() + `"}`, http.StatusNotFound},
		{"bad status", `{"title":"T","status":"Done"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeCreate(rec, postJSON(admin, "/api/tasks", tc.body))
			if rec.Code != tc.want {
				t.Errorf("got %d, want %d (body: %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestServeCreate_SanitizesFields(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")

	body := `{"title":"Fix <b>login</b>","description":"See <script>alert(1)</script> notes"}`
	rec := httptest.NewRecorder()
	handler.ServeCreate(rec, postJSON(admin, "/api/tasks", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strings.Contains(created.Title, "<") {
		t.Errorf("title not sanitized: %q", created.Title)
	}
	if strings.Contains(created.Description, "<script>") {
		t.Errorf("description not sanitized: %q", created.Description)
	}
}

func TestServeList_ScopedByRole(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")
	fixtures.CreateAssignedTask(ctx, "Alice task", models.StatusPending, admin.ID, alice.ID)
	fixtures.CreateTask(ctx, "Unassigned task", models.StatusPending, admin.ID)

	// Admin sees everything.
	req := testutil.WithUser(testutil.NewRequest("GET", "/api/tasks"), admin)
	rec := httptest.NewRecorder()
	handler.ServeList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list: got %d, want %d", rec.Code, http.StatusOK)
	}
	var all []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin list: got %d tasks, want 2", len(all))
	}

	// A team member only sees their own.
	req = testutil.WithUser(testutil.NewRequest("GET", "/api/tasks"), alice)
	rec = httptest.NewRecorder()
	handler.ServeList(rec, req)
	var mine []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != "Alice task" {
		t.Errorf("member list: got %+v, want only Alice's task", mine)
	}
}

func TestServeGet(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateTeamMember(ctx, "Bob", "bob@example.com")
	task := fixtures.CreateAssignedTask(ctx, "Alice task", models.StatusPending, admin.ID, alice.ID)

	get := func(u models.User, id string) *httptest.ResponseRecorder {
		req := testutil.WithUser(testutil.NewRequest("GET", "/api/tasks/"+id), u)
		req = testutil.WithChiURLParam(req, "taskID", id)
		rec := httptest.NewRecorder()
		handler.ServeGet(rec, req)
		return rec
	}

	if rec := get(alice, task.ID.Hex()); rec.Code != http.StatusOK {
		t.Errorf("owner get: got %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := get(bob, task.ID.Hex()); rec.Code != http.StatusForbidden {
		t.Errorf("other member get: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := get(admin, task.ID.Hex()); rec.Code != http.StatusOK {
		t.Errorf("admin get: got %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := get(admin, "bogus-id"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if rec := get(admin, primitive.NewObjectID().Hex()); rec.Code != http.StatusNotFound {
		t.Errorf("missing id: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeByMember(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateTeamMember(ctx, "Bob", "bob@example.com")
	fixtures.CreateAssignedTask(ctx, "Alice one", models.StatusPending, admin.ID, alice.ID)
	fixtures.CreateAssignedTask(ctx, "Alice two", models.StatusCompleted, admin.ID, alice.ID)
	fixtures.CreateTask(ctx, "Unassigned", models.StatusPending, admin.ID)

	byMember := func(id string) *httptest.ResponseRecorder {
		req := testutil.WithUser(testutil.NewRequest("GET", "/api/tasks/team/"+id), admin)
		req = testutil.WithChiURLParam(req, "memberID", id)
		rec := httptest.NewRecorder()
		handler.ServeByMember(rec, req)
		return rec
	}

	rec := byMember(alice.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var listed []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("alice's tasks: got %d, want 2", len(listed))
	}
	for _, task := range listed {
		if task.AssignedTo == nil || *task.AssignedTo != alice.ID {
			t.Errorf("task %q not assigned to Alice", task.Title)
		}
	}

	// A member with no tasks is an empty list, not a 404.
	rec = byMember(bob.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("empty member status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty member body: got %q, want []", body)
	}

	if rec := byMember("not-a-hex-id"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeUpdate_MemberRestrictions(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")
	task := fixtures.CreateAssignedTask(ctx, "Alice task", models.StatusPending, admin.ID, alice.ID)

	put := func(u models.User, id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", "/api/tasks/"+id, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = testutil.WithUser(req, u)
		req = testutil.WithChiURLParam(req, "taskID", id)
		rec := httptest.NewRecorder()
		handler.ServeUpdate(rec, req)
		return rec
	}

	// A member can move status and progress on their own task.
	rec := put(alice, task.ID.Hex(), `{"status":"In Progress","progress":30}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("member status update: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Status != models.StatusInProgress || updated.Progress != 30 {
		t.Errorf("updated: got %q/%d", updated.Status, updated.Progress)
	}

	// But not retitle it.
	if rec := put(alice, task.ID.Hex(), `{"title":"Renamed"}`); rec.Code != http.StatusForbidden {
		t.Errorf("member retitle: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// The admin can.
	if rec := put(admin, task.ID.Hex(), `{"title":"Renamed"}`); rec.Code != http.StatusOK {
		t.Errorf("admin retitle: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServeUpdate_ReassignmentNotifies(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateTeamMember(ctx, "Bob", "bob@example.com")
	task := fixtures.CreateAssignedTask(ctx, "Handover", models.StatusPending, admin.ID, alice.ID)

	body := `{"assignedTo":"` + bob.ID.Hex() + `"}`
	req := httptest.NewRequest("PUT", "/api/tasks/"+task.ID.Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, admin)
	req = testutil.WithChiURLParam(req, "taskID", task.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ServeUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("reassign: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	notes, err := notificationstore.New(fixtures.DB()).ListForUser(ctx, bob.ID, 10)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("notifications for new assignee: got %d, want 1", len(notes))
	}
}

func TestServeDelete(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	task := fixtures.CreateTask(ctx, "Doomed", models.StatusPending, admin.ID)

	del := func(id string) *httptest.ResponseRecorder {
		req := testutil.WithUser(testutil.NewRequest("DELETE", "/api/tasks/"+id), admin)
		req = testutil.WithChiURLParam(req, "taskID", id)
		rec := httptest.NewRecorder()
		handler.ServeDelete(rec, req)
		return rec
	}

	if rec := del(task.ID.Hex()); rec.Code != http.StatusOK {
		t.Errorf("delete: got %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := del(task.ID.Hex()); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeSummary(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	fixtures.CreateTask(ctx, "A", models.StatusCompleted, admin.ID)
	fixtures.CreateTask(ctx, "B", models.StatusCompleted, admin.ID)
	fixtures.CreateTask(ctx, "C", models.StatusInProgress, admin.ID)

	req := testutil.WithUser(testutil.NewRequest("GET", "/api/tasks/summary"), admin)
	rec := httptest.NewRecorder()
	handler.ServeSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var got tasks.TaskSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.TotalTasks != 3 {
		t.Errorf("TotalTasks: got %d, want 3", got.TotalTasks)
	}
	if got.ByStatus[models.StatusCompleted] != 2 || got.ByStatus[models.StatusInProgress] != 1 {
		t.Errorf("ByStatus: got %v", got.ByStatus)
	}
	// All known statuses appear even at zero.
	for _, s := range models.AllStatuses() {
		if _, ok := got.ByStatus[s]; !ok {
			t.Errorf("ByStatus missing %q", s)
		}
	}
}

func TestServeRecent(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")
	for i := 0; i < 7; i++ {
		fixtures.CreateTask(ctx, "Task", models.StatusPending, admin.ID)
	}

	req := testutil.WithUser(testutil.NewRequest("GET", "/api/tasks/recent"), admin)
	rec := httptest.NewRecorder()
	handler.ServeRecent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var got []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("recent: got %d tasks, want 5", len(got))
	}
}
