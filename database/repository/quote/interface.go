package quoteRepo

import (
	"context"
	"errors"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no quote matches the given id.
var ErrNotFound = errors.New("quote not found")

// QuoteRepository persists vendor quotes.
type QuoteRepository interface {
	Create(ctx context.Context, q models.Quote) (string, error)
	GetByID(ctx context.Context, id string) (*models.Quote, error)
	GetByWorkflowID(ctx context.Context, workflowID string) (*models.Quote, error)
	UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) error
}

type mongoQuoteRepo struct {
	coll *mongo.Collection
}

// NewMongoQuoteRepo returns a QuoteRepository backed by MongoDB.
func NewMongoQuoteRepo() QuoteRepository {
	return &mongoQuoteRepo{
		coll: database.DB().Collection("quotes"),
	}
}
