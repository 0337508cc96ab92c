// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"vowflow/config"

	"github.com/go-redis/redis/v8"
)

// WorkflowCacheClient backs the read-through workflow registry. It is a
// cache only and never the source of truth.
var WorkflowCacheClient *redis.Client

// InitWorkflowCache initializes the Redis client for workflow snapshots.
func InitWorkflowCache() {
	WorkflowCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := WorkflowCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Workflow Cache): %v", err)
	}
}

// GetWorkflowCacheClient returns the workflow cache client.
func GetWorkflowCacheClient() *redis.Client {
	if WorkflowCacheClient == nil {
		InitWorkflowCache()
	}
	return WorkflowCacheClient
}
