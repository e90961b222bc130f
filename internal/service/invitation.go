package service

import (
	"context"

	"github.com/deppfellow/wedding-backend/internal/lib/job"
	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
	"github.com/rs/zerolog"
)

// InvitationService stores RSVPs and notifies the couple about new ones.
type InvitationService struct {
	*Resource[model.Invitation]
}

func NewInvitationService(collection *repository.Collection[model.Invitation], queue TaskQueue, logger *zerolog.Logger) *InvitationService {
	resource := NewResource(collection, "Invitation")

	if queue != nil {
		resource.afterCreate = func(ctx context.Context, inv *model.Invitation) {
			err := queue.EnqueueRSVPNotification(ctx, job.RSVPEmailPayload{
				Name:    inv.Name,
				Status:  inv.Status,
				Message: inv.Message,
			})
			if err != nil {
				logger.Error().Err(err).Str("invitation_id", inv.ID).Msg("failed to enqueue RSVP notification")
			}
		}
	}

	return &InvitationService{Resource: resource}
}
