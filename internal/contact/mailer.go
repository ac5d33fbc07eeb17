package contact

import (
	"context"
	"net/http"
	"net/url"

	"github.com/resend/resend-go/v2"
)

// Mailer sends a composed message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer builds a mailer. baseURL overrides the API origin when set;
// a nil httpClient uses the library default.
func NewResendMailer(apiKey, baseURL string, httpClient *http.Client) (*ResendMailer, error) {
	var client *resend.Client
	if httpClient != nil {
		client = resend.NewCustomClient(httpClient, apiKey)
	} else {
		client = resend.NewClient(apiKey)
	}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}
	return &ResendMailer{client: client}, nil
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", err
	}
	return resp.Id, nil
}
