package repository

import (
	"context"

	"github.com/deppfellow/wedding-backend/internal/model"
)

// Repositories holds one collection per entity kind and slot.
type Repositories struct {
	Store DocumentStore

	Invitations *Collection[model.Invitation]
	Gallery     *Collection[model.GalleryItem]
	Guests      *Collection[model.Guest]
	Banks       *Collection[model.BankAccount]
	Cover       *Collection[model.MediaAsset]
	Gifts       *Collection[model.MediaAsset]
	Audio       *Collection[model.MediaAsset]

	Schedules map[string]*Collection[model.ScheduleEntry]
	Maps      map[string]*Collection[model.MapLink]
	Transfers map[string]*Collection[model.TransferTarget]
	Couple    map[string]*Collection[model.MediaAsset]
	Stories   map[string]*Collection[model.MediaAsset]
}

// NewRepositories builds every collection on top of store.
func NewRepositories(store DocumentStore) *Repositories {
	return &Repositories{
		Store: store,

		Invitations: NewCollection[model.Invitation](store, "invitations", OrderInserted),
		Gallery:     NewCollection[model.GalleryItem](store, "imageGallery", OrderInserted),
		Guests:      NewCollection[model.Guest](store, "guests", OrderNewestFirst),
		Banks:       NewCollection[model.BankAccount](store, "bankAccounts", OrderInserted),
		Cover:       NewCollection[model.MediaAsset](store, "coverImage", OrderInserted),
		Gifts:       NewCollection[model.MediaAsset](store, "giftItems", OrderInserted),
		Audio:       NewCollection[model.MediaAsset](store, "backgroundAudio", OrderInserted),

		Schedules: slotted[model.ScheduleEntry](store, model.ScheduleSlots, "Schedule"),
		Maps:      slotted[model.MapLink](store, model.MapSlots, "Map"),
		Transfers: slotted[model.TransferTarget](store, model.TransferSlots, "Transfer"),
		Couple:    slotted[model.MediaAsset](store, model.CoupleSlots, "Profile"),
		Stories:   slotted[model.MediaAsset](store, model.StorySlots, "Story"),
	}
}

// slotted creates one collection per slot, named e.g. "ceremonySchedule".
func slotted[T any](store DocumentStore, slots []string, suffix string) map[string]*Collection[T] {
	out := make(map[string]*Collection[T], len(slots))
	for _, slot := range slots {
		out[slot] = NewCollection[T](store, slot+suffix, OrderInserted)
	}
	return out
}

// TransferTargetsWithBanks lists the transfer targets of a slot with their
// bank resolved. Banks are listed once per call. A reference that does not
// resolve leaves Bank nil.
func (r *Repositories) TransferTargetsWithBanks(ctx context.Context, slot string) ([]model.TransferTarget, error) {
	targets, err := r.Transfers[slot].List(ctx)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return targets, nil
	}

	banks, err := r.Banks.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.BankAccount, len(banks))
	for i := range banks {
		byID[banks[i].ID] = &banks[i]
	}

	for i := range targets {
		targets[i].Bank = byID[targets[i].BankAccountRef]
	}

	return targets, nil
}
