package service

import (
	"context"

	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
)

// TransferService manages the transfer targets of one slot. Listing joins
// each target with its bank.
type TransferService struct {
	*Resource[model.TransferTarget]
	repos *repository.Repositories
	slot  string
}

func NewTransferService(repos *repository.Repositories, slot string) *TransferService {
	return &TransferService{
		Resource: NewResource(repos.Transfers[slot], "Transfer target"),
		repos:    repos,
		slot:     slot,
	}
}

func (s *TransferService) List(ctx context.Context) ([]model.TransferTarget, error) {
	return s.repos.TransferTargetsWithBanks(ctx, s.slot)
}
