package workflow

import (
	"context"
	"encoding/json"
	"time"

	"vowflow/models"
	"vowflow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const registryKeyPrefix = "wf:"

// Registry is a read-through cache of workflow snapshots keyed by id. It is
// never the source of truth: on restart it is empty and repopulates lazily,
// and scheduled reminder logic always re-reads the store instead. A nil
// client disables caching entirely.
type Registry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistry returns a Registry over the given Redis client.
func NewRegistry(client *redis.Client, ttl time.Duration) *Registry {
	return &Registry{client: client, ttl: ttl}
}

func (r *Registry) Get(ctx context.Context, workflowID string) (*models.Workflow, bool) {
	if r == nil || r.client == nil {
		return nil, false
	}
	data, err := r.client.Get(ctx, registryKeyPrefix+workflowID).Result()
	if err != nil {
		return nil, false
	}
	var wf models.Workflow
	if err := json.Unmarshal([]byte(data), &wf); err != nil {
		utils.GetLogger().Warn("corrupt registry entry dropped",
			zap.String("workflowID", workflowID), zap.Error(err))
		r.Invalidate(ctx, workflowID)
		return nil, false
	}
	return &wf, true
}

func (r *Registry) Put(ctx context.Context, wf *models.Workflow) {
	if r == nil || r.client == nil || wf == nil {
		return
	}
	data, err := json.Marshal(wf)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, registryKeyPrefix+wf.ID, data, r.ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache workflow snapshot",
			zap.String("workflowID", wf.ID), zap.Error(err))
	}
}

func (r *Registry) Invalidate(ctx context.Context, workflowID string) {
	if r == nil || r.client == nil {
		return
	}
	if err := r.client.Del(ctx, registryKeyPrefix+workflowID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate workflow snapshot",
			zap.String("workflowID", workflowID), zap.Error(err))
	}
}
