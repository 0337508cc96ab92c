package taskRepo

import (
	"context"
	"errors"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no task matches the given id.
var ErrNotFound = errors.New("task not found")

// TaskRepository persists actionable to-do items for the human actors.
type TaskRepository interface {
	Create(ctx context.Context, t models.Task) (string, error)
	ListByWorkflow(ctx context.Context, workflowID string) ([]models.Task, error)
	ListOpenByAssignee(ctx context.Context, assignedTo string) ([]models.Task, error)
	UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error
}

type mongoTaskRepo struct {
	coll *mongo.Collection
}

// NewMongoTaskRepo returns a TaskRepository backed by MongoDB.
func NewMongoTaskRepo() TaskRepository {
	return &mongoTaskRepo{
		coll: database.DB().Collection("tasks"),
	}
}
