package statelogRepo

import (
	"context"

	"vowflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByWorkflow returns the workflow's transition timeline, oldest first.
func (r *mongoStateLogRepo) ListByWorkflow(ctx context.Context, workflowID string) ([]models.WorkflowStateLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "transitioned_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"workflow_id": workflowID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.WorkflowStateLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
