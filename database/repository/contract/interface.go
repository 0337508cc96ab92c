package contractRepo

import (
	"context"
	"errors"
	"time"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no contract matches the given id.
var ErrNotFound = errors.New("contract not found")

// ContractRepository persists generated contracts.
type ContractRepository interface {
	Create(ctx context.Context, c models.Contract) (string, error)
	GetByID(ctx context.Context, id string) (*models.Contract, error)
	GetByWorkflowID(ctx context.Context, workflowID string) (*models.Contract, error)
	MarkSigned(ctx context.Context, id string, signedAt time.Time) error
}

type mongoContractRepo struct {
	coll *mongo.Collection
}

// NewMongoContractRepo returns a ContractRepository backed by MongoDB.
func NewMongoContractRepo() ContractRepository {
	return &mongoContractRepo{
		coll: database.DB().Collection("contracts"),
	}
}
