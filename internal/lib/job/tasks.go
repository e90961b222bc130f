package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis.
const (
	TaskDeleteAsset = "media:delete"
	TaskRSVPEmail   = "email:rsvp"
)

type DeleteAssetPayload struct {
	Key          string `json:"key"`
	ResourceType string `json:"resource_type"`
}

type RSVPEmailPayload struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewDeleteAssetTask builds the asset clean-up task.
func NewDeleteAssetTask(key, resourceType string) (*asynq.Task, error) {
	payload, err := json.Marshal(DeleteAssetPayload{Key: key, ResourceType: resourceType})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskDeleteAsset,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("low"),
		asynq.Timeout(time.Minute),
	), nil
}

func NewRSVPEmailTask(rsvp RSVPEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(rsvp)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRSVPEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
