package email

import "context"

// ContactMessage is one submission of the site's contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SendContactEmail forwards msg to the configured recipient. The submitter's
// address only appears in the body.
func (c *Client) SendContactEmail(ctx context.Context, msg ContactMessage) error {
	return c.SendEmail(ctx, msg.Subject, TemplateContact, msg)
}
