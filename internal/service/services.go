package service

import (
	"context"

	"github.com/deppfellow/wedding-backend/internal/lib/job"
	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
	"github.com/deppfellow/wedding-backend/internal/server"
)

// TaskQueue is the background work the services hand off.
// *job.JobService implements it.
type TaskQueue interface {
	EnqueueAssetDeletion(ctx context.Context, key, resourceType string) error
	EnqueueRSVPNotification(ctx context.Context, rsvp job.RSVPEmailPayload) error
}

type Services struct {
	Auth        *AuthService
	Invitations *InvitationService
	Guests      *GuestService

	Schedules map[string]*Resource[model.ScheduleEntry]
	Maps      map[string]*Resource[model.MapLink]
	Transfers map[string]*TransferService

	Gallery *MediaService[model.GalleryItem]
	Banks   *MediaService[model.BankAccount]
	Cover   *MediaService[model.MediaAsset]
	Gifts   *MediaService[model.MediaAsset]
	Audio   *MediaService[model.MediaAsset]
	Couple  map[string]*MediaService[model.MediaAsset]
	Stories map[string]*MediaService[model.MediaAsset]
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *JobService must not end up as a non-nil interface.
	var queue TaskQueue
	if s.Job != nil {
		queue = s.Job
	}

	guests, err := NewGuestService(repos.Guests, s.Config.Invitation.BaseURL)
	if err != nil {
		return nil, err
	}

	services := &Services{
		Auth:        NewAuthService(s.Identity, s.Config.Auth.AllowSignup),
		Invitations: NewInvitationService(repos.Invitations, queue, s.Logger),
		Guests:      guests,

		Schedules: make(map[string]*Resource[model.ScheduleEntry]),
		Maps:      make(map[string]*Resource[model.MapLink]),
		Transfers: make(map[string]*TransferService),

		Gallery: NewMediaService(repos.Gallery, GalleryKind, s.Media, queue, s.Logger),
		Banks:   NewMediaService(repos.Banks, BankKind, s.Media, queue, s.Logger),
		Cover:   NewMediaService(repos.Cover, CoverKind, s.Media, queue, s.Logger),
		Gifts:   NewMediaService(repos.Gifts, GiftKind, s.Media, queue, s.Logger),
		Audio:   NewMediaService(repos.Audio, AudioKind, s.Media, queue, s.Logger),
		Couple:  make(map[string]*MediaService[model.MediaAsset]),
		Stories: make(map[string]*MediaService[model.MediaAsset]),
	}

	for slot, collection := range repos.Schedules {
		services.Schedules[slot] = NewResource(collection, "Schedule")
	}
	for slot, collection := range repos.Maps {
		services.Maps[slot] = NewResource(collection, "Map link")
	}
	for slot := range repos.Transfers {
		services.Transfers[slot] = NewTransferService(repos, slot)
	}
	for slot, collection := range repos.Couple {
		services.Couple[slot] = NewMediaService(collection, CoupleKind, s.Media, queue, s.Logger)
	}
	for slot, collection := range repos.Stories {
		services.Stories[slot] = NewMediaService(collection, StoryKind, s.Media, queue, s.Logger)
	}

	return services, nil
}
