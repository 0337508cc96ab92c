package bookingRepo

import (
	"context"
	"errors"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken is returned when the unique (vendor, date, range) index
	// rejects a write: the availability race was lost at commit time.
	ErrSlotTaken = errors.New("vendor slot already booked")
)

// BookingRepository persists durable reservation records.
type BookingRepository interface {
	Create(ctx context.Context, b models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByWorkflowID(ctx context.Context, workflowID string) (*models.Booking, error)
	// FindActive returns pending/confirmed bookings for the vendor on the
	// given date, excluding excludeID when non-empty.
	FindActive(ctx context.Context, vendorID, date, excludeID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	UpdateSchedule(ctx context.Context, id, date string, start, end int) error
	ListByVendor(ctx context.Context, vendorID string) ([]models.Booking, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
