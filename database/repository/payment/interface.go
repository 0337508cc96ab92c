package paymentRepo

import (
	"context"
	"errors"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no payment record matches.
var ErrNotFound = errors.New("payment record not found")

// PaymentRepository persists gateway payment correlations.
type PaymentRepository interface {
	Create(ctx context.Context, p models.Payment) (string, error)
	GetByIntentID(ctx context.Context, intentID string) (*models.Payment, error)
	// ListCaptured returns succeeded deposit/balance payments for a booking;
	// these are the payments cancellation must compensate.
	ListCaptured(ctx context.Context, bookingID string) ([]models.Payment, error)
	ListByWorkflow(ctx context.Context, workflowID string) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus, failureReason string) error
	// SupersedePending marks every pending payment of the given type for a
	// booking as superseded, except the row identified by exceptID.
	SupersedePending(ctx context.Context, bookingID string, ptype models.PaymentType, exceptID string) error
	EnsureIndexes() error
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a PaymentRepository backed by MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	return &mongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
}
