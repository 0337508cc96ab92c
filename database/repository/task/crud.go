package taskRepo

import (
	"context"
	"time"

	"vowflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTaskRepo) Create(ctx context.Context, t models.Task) (string, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = models.TaskOpen
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return "", err
	}
	return t.ID, nil
}

func (r *mongoTaskRepo) ListByWorkflow(ctx context.Context, workflowID string) ([]models.Task, error) {
	return r.list(ctx, bson.M{"workflow_id": workflowID})
}

func (r *mongoTaskRepo) ListOpenByAssignee(ctx context.Context, assignedTo string) ([]models.Task, error) {
	return r.list(ctx, bson.M{"assigned_to": assignedTo, "status": models.TaskOpen})
}

func (r *mongoTaskRepo) list(ctx context.Context, filter bson.M) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *mongoTaskRepo) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
