package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRevenueWarmup is the task type that pre-populates revenue report caches.
	TaskRevenueWarmup = "revenue:warmup"
)

// Aggregate names accepted in RevenueWarmupPayload.
const (
	AggregateWeekly       = "weekly"
	AggregateTopMerchants = "top_merchants"
	AggregateTopItems     = "top_items"
)

// RevenueWarmupPayload selects which report aggregates to warm and how
// deep the rankings go.
type RevenueWarmupPayload struct {
	Aggregates []string `json:"aggregates"`
	TopLimit   int      `json:"top_limit"`
}

// NewRevenueWarmupTask constructs an Asynq task for cache warmup.
func NewRevenueWarmupTask(payload RevenueWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRevenueWarmup, data), nil
}
