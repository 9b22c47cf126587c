package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCatalogRefresh = "catalog.refresh"

// CatalogRefreshPayload carries the reason a refresh was requested, for the
// worker's log line.
type CatalogRefreshPayload struct {
	Reason string `json:"reason"`
}

func NewCatalogRefreshTask(payload CatalogRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogRefresh, data), nil
}

func ParseCatalogRefreshPayload(task *asynq.Task) (CatalogRefreshPayload, error) {
	var payload CatalogRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CatalogRefreshPayload{}, err
	}
	return payload, nil
}
