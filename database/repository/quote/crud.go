package quoteRepo

import (
	"context"
	"time"

	"vowflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoQuoteRepo) Create(ctx context.Context, q models.Quote) (string, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, q); err != nil {
		return "", err
	}
	return q.ID, nil
}

func (r *mongoQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	var q models.Quote
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *mongoQuoteRepo) GetByWorkflowID(ctx context.Context, workflowID string) (*models.Quote, error) {
	var q models.Quote
	err := r.coll.FindOne(ctx, bson.M{"workflow_id": workflowID}).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *mongoQuoteRepo) UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) error {
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
