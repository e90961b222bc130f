package service

import (
	"fmt"
	"net/url"

	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
)

// GuestService keeps the guest list. Each guest gets a personal link to the
// invitation page, derived from their name.
type GuestService struct {
	*Resource[model.Guest]
	baseURL *url.URL
}

func NewGuestService(collection *repository.Collection[model.Guest], invitationBaseURL string) (*GuestService, error) {
	base, err := url.Parse(invitationBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid invitation base url: %w", err)
	}

	svc := &GuestService{Resource: NewResource(collection, "Guest"), baseURL: base}
	svc.beforeWrite = func(fields map[string]any) error {
		if name, ok := fields["guestName"].(string); ok {
			fields["referralUrl"] = svc.ReferralURL(name)
		}
		return nil
	}

	return svc, nil
}

// ReferralURL returns the invitation link for a guest: base url with the
// name in the "to" query parameter.
func (s *GuestService) ReferralURL(guestName string) string {
	link := *s.baseURL
	query := link.Query()
	query.Set("to", guestName)
	link.RawQuery = query.Encode()
	return link.String()
}
