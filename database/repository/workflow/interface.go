package workflowRepo

import (
	"context"
	"errors"

	"vowflow/database"
	"vowflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no workflow matches the given id.
	ErrNotFound = errors.New("workflow not found")
	// ErrStateMismatch is returned when the persisted state does not equal
	// the expected state of a transition. The workflow and its audit log are
	// left untouched.
	ErrStateMismatch = errors.New("workflow state mismatch")
)

// WorkflowRepository persists workflows and their transitions.
type WorkflowRepository interface {
	Create(ctx context.Context, wf models.Workflow) (string, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Workflow, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Workflow, error)

	// Transition applies the given hops atomically: the first hop is
	// conditional on the persisted state equalling hops[0].From, one audit
	// row is appended per hop, and within (when non-nil) runs inside the
	// same transaction for dependent entity writes. On any failure the
	// whole operation rolls back.
	Transition(ctx context.Context, workflowID string, hops []models.StateHop, within func(ctx context.Context) error) (*models.Workflow, error)

	// SetRefs attaches entity references to the workflow document; empty
	// fields are left untouched. Intended for use inside a Transition
	// callback.
	SetRefs(ctx context.Context, workflowID string, refs models.WorkflowRefs) error

	// SetCancelReason records the cancellation reason. Intended for use
	// inside the cancel Transition callback.
	SetCancelReason(ctx context.Context, workflowID, reason string) error

	// UpdateSchedule moves the workflow to a new service date and time
	// range without a state change. within (when non-nil) runs inside the
	// same transaction so the booking moves with the workflow or not at
	// all.
	UpdateSchedule(ctx context.Context, workflowID, date string, start, end int, within func(ctx context.Context) error) error

	EnsureIndexes() error
}

type mongoWorkflowRepo struct {
	coll    *mongo.Collection
	logColl *mongo.Collection
}

// NewMongoWorkflowRepo returns a WorkflowRepository backed by MongoDB.
func NewMongoWorkflowRepo() WorkflowRepository {
	db := database.DB()
	return &mongoWorkflowRepo{
		coll:    db.Collection("workflows"),
		logColl: db.Collection("workflow_state_logs"),
	}
}
