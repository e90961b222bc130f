package email

import (
	"context"
	"fmt"
)

// RSVP is a guest's reply to the invitation.
type RSVP struct {
	Name    string
	Status  string
	Message string
}

// SendRSVPNotification tells the couple about a new RSVP.
func (c *Client) SendRSVPNotification(ctx context.Context, to string, rsvp RSVP) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("New RSVP from %s (%s)", rsvp.Name, rsvp.Status),
		TemplateRSVP,
		map[string]string{
			"Name":    rsvp.Name,
			"Status":  rsvp.Status,
			"Message": rsvp.Message,
		},
	)
}
