package blockedRepo

import (
	"context"
	"time"

	"vowflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoBlockedRepo) Create(ctx context.Context, b models.BlockedDate) (string, error) {
	if b.BlockID == "" {
		b.BlockID = uuid.New().String()
	}
	b.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return "", err
	}
	return b.BlockID, nil
}

func (r *mongoBlockedRepo) Delete(ctx context.Context, vendorID, blockID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"vendor_id": vendorID, "block_id": blockID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBlockedRepo) ListByVendorDate(ctx context.Context, vendorID, date string) ([]models.BlockedDate, error) {
	return r.list(ctx, bson.M{"vendor_id": vendorID, "date": date})
}

func (r *mongoBlockedRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.BlockedDate, error) {
	return r.list(ctx, bson.M{"vendor_id": vendorID})
}

func (r *mongoBlockedRepo) list(ctx context.Context, filter bson.M) ([]models.BlockedDate, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedDate
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}
