package workflowRepo

import (
	"context"
	"fmt"
	"time"

	"vowflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new workflow together with its first audit row.
func (r *mongoWorkflowRepo) Create(ctx context.Context, wf models.Workflow) (string, error) {
	if wf.ID == "" {
		wf.ID = uuid.New().String()
	}
	now := time.Now()
	wf.CreatedAt = now
	wf.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, wf); err != nil {
		return "", err
	}
	entry := models.WorkflowStateLog{
		ID:             uuid.New().String(),
		WorkflowID:     wf.ID,
		FromState:      "",
		ToState:        wf.State,
		TransitionedAt: now,
	}
	if _, err := r.logColl.InsertOne(ctx, entry); err != nil {
		return "", err
	}
	return wf.ID, nil
}

// GetByID returns a workflow by its ID.
func (r *mongoWorkflowRepo) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	var wf models.Workflow
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&wf)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wf, nil
}

func (r *mongoWorkflowRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Workflow, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *mongoWorkflowRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.Workflow, error) {
	return r.list(ctx, bson.M{"vendor_id": vendorID})
}

func (r *mongoWorkflowRepo) list(ctx context.Context, filter bson.M) ([]models.Workflow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workflows []models.Workflow
	if err := cursor.All(ctx, &workflows); err != nil {
		return nil, err
	}
	return workflows, nil
}

func (r *mongoWorkflowRepo) SetRefs(ctx context.Context, workflowID string, refs models.WorkflowRefs) error {
	set := bson.M{"updated_at": time.Now()}
	if refs.QuoteID != "" {
		set["quote_id"] = refs.QuoteID
	}
	if refs.ContractID != "" {
		set["contract_id"] = refs.ContractID
	}
	if refs.BookingID != "" {
		set["booking_id"] = refs.BookingID
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": workflowID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoWorkflowRepo) SetCancelReason(ctx context.Context, workflowID, reason string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": workflowID}, bson.M{
		"$set": bson.M{"cancel_reason": reason, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSchedule runs inside one transaction with within, so a failed
// dependent write rolls the schedule change back.
func (r *mongoWorkflowRepo) UpdateSchedule(ctx context.Context, workflowID, date string, start, end int, within func(ctx context.Context) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.coll.UpdateOne(sc, bson.M{"id": workflowID}, bson.M{
			"$set": bson.M{"service_date": date, "start": start, "end": end, "updated_at": time.Now()},
		})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		if within != nil {
			if err := within(sc); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	_, err = sess.WithTransaction(ctx, txnFn)
	return err
}
