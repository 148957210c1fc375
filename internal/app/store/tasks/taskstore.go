package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errBadStatus   = errors.New(`status must be "Pending"|"In Progress"|"Completed"|"On Hold"`)
	errBadPriority = errors.New(`priority must be "Low"|"Medium"|"High"`)
	errBadProgress = errors.New("progress must be between 0 and 100")
)

// IsValidation reports whether err came from input validation rather than
// the database.
func IsValidation(err error) bool {
	return errors.Is(err, errBadStatus) || errors.Is(err, errBadPriority) || errors.Is(err, errBadProgress)
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// Filter describes the query capabilities reports rely on: status equality
// and not-equal, due-date upper bound, creation-time range, and assignee
// equality. Zero values are ignored. Status and StatusNot may be set
// together; both conditions apply.
type Filter struct {
	Status      string
	StatusNot   string
	DueBefore   *time.Time
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	AssignedTo  *primitive.ObjectID
}

func (f Filter) query() bson.M {
	q := bson.M{}
	switch {
	case f.Status != "" && f.StatusNot != "":
		q["status"] = bson.M{"$eq": f.Status, "$ne": f.StatusNot}
	case f.Status != "":
		q["status"] = f.Status
	case f.StatusNot != "":
		q["status"] = bson.M{"$ne": f.StatusNot}
	}
	if f.DueBefore != nil {
		q["due_date"] = bson.M{"$lt": *f.DueBefore}
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		created := bson.M{}
		if f.CreatedFrom != nil {
			created["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			created["$lte"] = *f.CreatedTo
		}
		q["created_at"] = created
	}
	if f.AssignedTo != nil {
		q["assigned_to"] = *f.AssignedTo
	}
	return q
}

// Count returns how many tasks match the filter.
func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	return s.c.CountDocuments(ctx, f.query())
}

// Find returns all tasks matching the filter, sorted by creation time
// ascending so exports and reports are reproducible.
func (s *Store) Find(ctx context.Context, f Filter) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, f.query(), options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GroupByField groups all tasks by the given field and returns a
// label -> count map. Documents where the field is missing or empty are
// skipped; callers that need deterministic zero buckets pre-seed the map.
func (s *Store) GroupByField(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	result := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Label *string `bson:"_id"`
			Count int64   `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.Label == nil || *row.Label == "" {
			continue
		}
		result[*row.Label] = row.Count
	}
	return result, cur.Err()
}

// Insert creates a new task after validating status, priority, and progress.
// Empty status and priority default to Pending/Medium.
func (s *Store) Insert(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if !models.IsValidStatus(t.Status) {
		return models.Task{}, errBadStatus
	}
	if !models.IsValidPriority(t.Priority) {
		return models.Task{}, errBadPriority
	}
	if t.Progress < 0 || t.Progress > 100 {
		return models.Task{}, errBadProgress
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update holds the fields that can be changed on an existing task.
// Nil pointers leave the stored value untouched.
type Update struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Category    *string
	DueDate     *time.Time
	AssignedTo  *primitive.ObjectID
	Progress    *int
}

// Apply updates a task's fields and returns the updated document.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Task, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		if !models.IsValidStatus(*upd.Status) {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		if !models.IsValidPriority(*upd.Priority) {
			return nil, errBadPriority
		}
		set["priority"] = *upd.Priority
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.AssignedTo != nil {
		set["assigned_to"] = *upd.AssignedTo
	}
	if upd.Progress != nil {
		if *upd.Progress < 0 || *upd.Progress > 100 {
			return nil, errBadProgress
		}
		set["progress"] = *upd.Progress
	}

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a task by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Recent returns the n most recently created tasks, newest first.
func (s *Store) Recent(ctx context.Context, n int64) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(n))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
