package taskstore_test

import (
	"testing"
	"time"

	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"github.com/nolanmercer/taskforge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInsert_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Insert(ctx, models.Task{
		Title:     "Bare task",
		CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Errorf("Status: got %q, want %q", created.Status, models.StatusPending)
	}
	if created.Priority != models.PriorityMedium {
		t.Errorf("Priority: got %q, want %q", created.Priority, models.PriorityMedium)
	}
	if created.ID.IsZero() {
		t.Error("expected a generated ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestInsert_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cases := []struct {
		name string
		task models.Task
	}{
		{"bad status", models.Task{Title: "T", Status: "Done"}},
		{"bad priority", models.Task{Title: "T", Priority: "Urgent"}},
		{"bad progress", models.Task{Title: "T", Progress: 150}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Insert(ctx, tc.task)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !taskstore.IsValidation(err) {
				t.Errorf("IsValidation(%v) = false, want true", err)
			}
		})
	}
}

func TestFilter_StatusAndAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	fixtures.CreateAssignedTask(ctx, "Alice done", models.StatusCompleted, admin, alice)
	fixtures.CreateAssignedTask(ctx, "Alice open", models.StatusPending, admin, alice)
	fixtures.CreateTask(ctx, "Unassigned open", models.StatusPending, admin)

	byAssignee, err := store.Find(ctx, taskstore.Filter{AssignedTo: &alice})
	if err != nil {
		t.Fatalf("Find by assignee failed: %v", err)
	}
	if len(byAssignee) != 2 {
		t.Errorf("by assignee: got %d tasks, want 2", len(byAssignee))
	}

	n, err := store.Count(ctx, taskstore.Filter{Status: models.StatusPending})
	if err != nil {
		t.Fatalf("Count by status failed: %v", err)
	}
	if n != 2 {
		t.Errorf("pending count: got %d, want 2", n)
	}

	n, err = store.Count(ctx, taskstore.Filter{StatusNot: models.StatusCompleted})
	if err != nil {
		t.Fatalf("Count by status-not failed: %v", err)
	}
	if n != 2 {
		t.Errorf("not-completed count: got %d, want 2", n)
	}
}

func TestFilter_StatusWithStatusNot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	fixtures.CreateTask(ctx, "Open", models.StatusPending, admin)
	fixtures.CreateTask(ctx, "Done", models.StatusCompleted, admin)
	fixtures.CreateTask(ctx, "Parked", models.StatusOnHold, admin)

	// Both conditions apply; equality does not get clobbered.
	n, err := store.Count(ctx, taskstore.Filter{Status: models.StatusPending, StatusNot: models.StatusCompleted})
	if err != nil {
		t.Fatalf("Count with both status filters failed: %v", err)
	}
	if n != 1 {
		t.Errorf("pending-and-not-completed count: got %d, want 1", n)
	}

	n, err = store.Count(ctx, taskstore.Filter{Status: models.StatusCompleted, StatusNot: models.StatusCompleted})
	if err != nil {
		t.Fatalf("Count with contradictory status filters failed: %v", err)
	}
	if n != 0 {
		t.Errorf("contradictory count: got %d, want 0", n)
	}
}

func TestFilter_OverdueShape(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	insert := func(title, status string, due *time.Time) {
		t.Helper()
		if _, err := store.Insert(ctx, models.Task{
			Title:     title,
			Status:    status,
			CreatedBy: primitive.NewObjectID(),
			DueDate:   due,
		}); err != nil {
			t.Fatalf("Insert %q failed: %v", title, err)
		}
	}
	insert("overdue", models.StatusPending, &past)
	insert("completed past due", models.StatusCompleted, &past)
	insert("not yet due", models.StatusPending, &future)
	insert("no due date", models.StatusPending, nil)

	n, err := store.Count(ctx, taskstore.Filter{
		StatusNot: models.StatusCompleted,
		DueBefore: &now,
	})
	if err != nil {
		t.Fatalf("overdue count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("overdue count: got %d, want 1", n)
	}
}

func TestFilter_CreatedRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	fixtures.CreateTaskAt(ctx, "May", models.StatusPending, admin, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	fixtures.CreateTaskAt(ctx, "June", models.StatusPending, admin, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	fixtures.CreateTaskAt(ctx, "July", models.StatusPending, admin, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	found, err := store.Find(ctx, taskstore.Filter{CreatedFrom: &from, CreatedTo: &to})
	if err != nil {
		t.Fatalf("Find by range failed: %v", err)
	}
	if len(found) != 1 || found[0].Title != "June" {
		t.Errorf("range: got %d tasks, want only June", len(found))
	}
}

func TestGroupByField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	fixtures.CreateTask(ctx, "A", models.StatusCompleted, admin)
	fixtures.CreateTask(ctx, "B", models.StatusCompleted, admin)
	fixtures.CreateTask(ctx, "C", models.StatusPending, admin)

	counts, err := store.GroupByField(ctx, "status")
	if err != nil {
		t.Fatalf("GroupByField failed: %v", err)
	}
	if counts[models.StatusCompleted] != 2 {
		t.Errorf("Completed: got %d, want 2", counts[models.StatusCompleted])
	}
	if counts[models.StatusPending] != 1 {
		t.Errorf("Pending: got %d, want 1", counts[models.StatusPending])
	}
}

func TestApplyAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task := fixtures.CreateTask(ctx, "Original", models.StatusPending, primitive.NewObjectID())

	status := models.StatusCompleted
	progress := 100
	updated, err := store.Apply(ctx, task.ID, taskstore.Update{Status: &status, Progress: &progress})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated.Status != models.StatusCompleted || updated.Progress != 100 {
		t.Errorf("updated: got %q/%d, want Completed/100", updated.Status, updated.Progress)
	}
	if updated.Title != "Original" {
		t.Errorf("untouched field changed: got title %q", updated.Title)
	}

	n, err := store.Delete(ctx, task.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Delete: got %d, want 1", n)
	}

	n, err = store.Delete(ctx, task.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second Delete: got %d, want 0", n)
	}
}

func TestRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		fixtures.CreateTaskAt(ctx, "Task", models.StatusPending, admin, base.Add(time.Duration(i)*time.Hour))
	}

	recent, err := store.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("Recent: got %d, want 5", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Errorf("Recent not ordered newest first at index %d", i)
		}
	}
}
