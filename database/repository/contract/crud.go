package contractRepo

import (
	"context"
	"time"

	"vowflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoContractRepo) Create(ctx context.Context, c models.Contract) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (r *mongoContractRepo) GetByID(ctx context.Context, id string) (*models.Contract, error) {
	var c models.Contract
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoContractRepo) GetByWorkflowID(ctx context.Context, workflowID string) (*models.Contract, error) {
	var c models.Contract
	err := r.coll.FindOne(ctx, bson.M{"workflow_id": workflowID}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoContractRepo) MarkSigned(ctx context.Context, id string, signedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{
			"status":     models.ContractSigned,
			"signed_at":  signedAt,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
