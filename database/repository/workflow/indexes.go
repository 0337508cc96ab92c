package workflowRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the workflow collections.
func (r *mongoWorkflowRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	workflowIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("customer_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "vendor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("vendor_created_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, workflowIndexes); err != nil {
		return fmt.Errorf("failed to create workflow indexes: %w", err)
	}

	logIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workflow_id", Value: 1}, {Key: "transitioned_at", Value: 1}},
			Options: options.Index().SetName("workflow_transitioned_idx"),
		},
	}
	if _, err := r.logColl.Indexes().CreateMany(ctx, logIndexes); err != nil {
		return fmt.Errorf("failed to create state log indexes: %w", err)
	}
	return nil
}
