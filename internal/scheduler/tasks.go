// Package scheduler carries the background job plumbing: the asynq client
// used to enqueue work and the worker that processes it.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadRetention = "leads.retention"

// LeadRetentionPayload tells the worker how far back to keep leads.
type LeadRetentionPayload struct {
	RetentionDays int `json:"retentionDays"`
}

func NewLeadRetentionTask(payload LeadRetentionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadRetention, data), nil
}

func ParseLeadRetentionPayload(task *asynq.Task) (LeadRetentionPayload, error) {
	var payload LeadRetentionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadRetentionPayload{}, err
	}
	return payload, nil
}
