package blockedRepo

import (
	"context"
	"errors"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no blocked date matches.
var ErrNotFound = errors.New("blocked date not found")

// BlockedDateRepository persists vendor-declared unavailable dates.
type BlockedDateRepository interface {
	Create(ctx context.Context, b models.BlockedDate) (string, error)
	Delete(ctx context.Context, vendorID, blockID string) error
	ListByVendorDate(ctx context.Context, vendorID, date string) ([]models.BlockedDate, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.BlockedDate, error)
}

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo returns a BlockedDateRepository backed by MongoDB.
func NewMongoBlockedRepo() BlockedDateRepository {
	return &mongoBlockedRepo{
		coll: database.DB().Collection("blocked_dates"),
	}
}
