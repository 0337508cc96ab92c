package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"vowflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the booking indexes. The partial unique index over
// (vendor_id, service_date, start, end) is the final arbiter of the
// availability race: it only covers pending/confirmed bookings, so a
// cancelled booking frees the slot.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "vendor_id", Value: 1},
				{Key: "service_date", Value: 1},
				{Key: "start", Value: 1},
				{Key: "end", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_vendor_slot").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{models.BookingPending, models.BookingConfirmed}},
				}),
		},
		{
			Keys:    bson.D{{Key: "workflow_id", Value: 1}},
			Options: options.Index().SetName("workflow_idx"),
		},
		{
			Keys:    bson.D{{Key: "vendor_id", Value: 1}, {Key: "service_date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("vendor_date_status_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
