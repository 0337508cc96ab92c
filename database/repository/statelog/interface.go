package statelogRepo

import (
	"context"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// StateLogRepository reads the append-only transition audit log. Writes
// happen exclusively inside workflow transitions.
type StateLogRepository interface {
	ListByWorkflow(ctx context.Context, workflowID string) ([]models.WorkflowStateLog, error)
}

type mongoStateLogRepo struct {
	coll *mongo.Collection
}

// NewMongoStateLogRepo returns a StateLogRepository backed by MongoDB.
func NewMongoStateLogRepo() StateLogRepository {
	return &mongoStateLogRepo{
		coll: database.DB().Collection("workflow_state_logs"),
	}
}
