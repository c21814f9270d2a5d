package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockDigest scans the catalog for products at or below their
	// reorder level and logs a digest.
	TaskLowStockDigest = "inventory:low_stock_digest"
)

// LowStockDigestPayload selects which stock buckets the digest covers.
type LowStockDigestPayload struct {
	IncludeOutOfStock bool `json:"includeOutOfStock"`
}

// NewLowStockDigestTask constructs an Asynq task.
func NewLowStockDigestTask(payload LowStockDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockDigest, data), nil
}
