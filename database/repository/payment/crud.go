package paymentRepo

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

func (r *mongoPaymentRepo) Create(ctx context.Context, p models.Payment) (string, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *mongoPaymentRepo) GetByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	var p models.Payment
	filter := bson.M{
		"intent_id": intentID,
		"type":      bson.M{"$in": bson.A{models.PaymentDeposit, models.PaymentBalance}},
	}
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *mongoPaymentRepo) ListCaptured(ctx context.Context, bookingID string) ([]models.Payment, error) {
	filter := bson.M{
		"booking_id": bookingID,
		"status":     models.PaymentSucceeded,
		"type":       bson.M{"$in": bson.A{models.PaymentDeposit, models.PaymentBalance}},
	}
	return r.list(ctx, filter)
}

func (r *mongoPaymentRepo) ListByWorkflow(ctx context.Context, workflowID string) ([]models.Payment, error) {
	return r.list(ctx, bson.M{"workflow_id": workflowID})
}

func (r *mongoPaymentRepo) list(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *mongoPaymentRepo) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus, failureReason string) error {
	set := bson.M{"status": status, "updated_at": time.Now()}
	if failureReason != "" {
		set["failure_reason"] = failureReason
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPaymentRepo) SupersedePending(ctx context.Context, bookingID string, ptype models.PaymentType, exceptID string) error {
	filter := bson.M{
		"booking_id": bookingID,
		"type":       ptype,
		"status":     models.PaymentPending,
		"id":         bson.M{"$ne": exceptID},
	}
	_, err := r.coll.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"status": models.PaymentSuperseded, "updated_at": time.Now()},
	})
	return err
}

// EnsureIndexes creates the payment indexes. The partial unique index on
// intent_id keeps gateway correlations unambiguous for callback lookups.
func (r *mongoPaymentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "intent_id", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_intent_type").
				SetPartialFilterExpression(bson.M{"intent_id": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("booking_status_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}
