package workflowRepo

import (
	"context"
	"fmt"
	"time"

	"vowflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Transition applies hops inside one MongoDB transaction. The first hop is a
// conditional update on {id, state}; MatchedCount == 0 distinguishes a
// missing workflow from a stale expected state. Subsequent hops chain off
// the first, so each is conditional on its predecessor having applied.
func (r *mongoWorkflowRepo) Transition(
	ctx context.Context,
	workflowID string,
	hops []models.StateHop,
	within func(ctx context.Context) error,
) (*models.Workflow, error) {
	if len(hops) == 0 {
		return nil, fmt.Errorf("transition requires at least one hop")
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var updated models.Workflow
	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		for _, hop := range hops {
			now := time.Now()
			res, err := r.coll.UpdateOne(sc,
				bson.M{"id": workflowID, "state": hop.From},
				bson.M{"$set": bson.M{"state": hop.To, "updated_at": now}},
			)
			if err != nil {
				return nil, fmt.Errorf("update workflow state failed: %w", err)
			}
			if res.MatchedCount == 0 {
				if err := r.coll.FindOne(sc, bson.M{"id": workflowID}).Err(); err == mongo.ErrNoDocuments {
					return nil, ErrNotFound
				}
				return nil, ErrStateMismatch
			}

			entry := models.WorkflowStateLog{
				ID:             uuid.New().String(),
				WorkflowID:     workflowID,
				FromState:      hop.From,
				ToState:        hop.To,
				TransitionedAt: now,
			}
			if _, err := r.logColl.InsertOne(sc, entry); err != nil {
				return nil, fmt.Errorf("append state log failed: %w", err)
			}
		}

		if within != nil {
			if err := within(sc); err != nil {
				return nil, err
			}
		}

		if err := r.coll.FindOne(sc, bson.M{"id": workflowID}).Decode(&updated); err != nil {
			return nil, fmt.Errorf("reload workflow failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return nil, err
	}
	return &updated, nil
}
