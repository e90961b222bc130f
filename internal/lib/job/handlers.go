package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/wedding-backend/internal/lib/email"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleDeleteAssetTask(ctx context.Context, t *asynq.Task) error {
	var p DeleteAssetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal delete asset payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskDeleteAsset).
		Str("key", p.Key).
		Msg("Processing asset deletion task")

	if err := j.media.Delete(ctx, p.Key, p.ResourceType); err != nil {
		j.logger.Error().
			Str("type", TaskDeleteAsset).
			Str("key", p.Key).
			Err(err).
			Msg("Failed to delete asset")
		return err
	}

	j.logger.Info().
		Str("type", TaskDeleteAsset).
		Str("key", p.Key).
		Msg("Successfully deleted asset")

	return nil
}

func (j *JobService) handleRSVPEmailTask(ctx context.Context, t *asynq.Task) error {
	var p RSVPEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal rsvp email payload: %w: %w", err, asynq.SkipRetry)
	}

	// Notifications may have been switched off after the task was queued.
	if j.notifyEmail == "" || j.email == nil {
		j.logger.Warn().Str("type", TaskRSVPEmail).Msg("RSVP notifications disabled, dropping task")
		return nil
	}

	j.logger.Info().
		Str("type", TaskRSVPEmail).
		Str("guest", p.Name).
		Msg("Processing RSVP email task")

	err := j.email.SendRSVPNotification(ctx, j.notifyEmail, email.RSVP{
		Name:    p.Name,
		Status:  p.Status,
		Message: p.Message,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskRSVPEmail).
			Str("guest", p.Name).
			Err(err).
			Msg("Failed to send RSVP email")
		return err
	}

	j.logger.Info().
		Str("type", TaskRSVPEmail).
		Str("guest", p.Name).
		Msg("Successfully sent RSVP email")

	return nil
}
