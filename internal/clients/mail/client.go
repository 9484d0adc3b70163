package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobmatch/internal/observability"

	"github.com/resendlabs/resend-go"
)

const defaultTimeout = 10 * time.Second

var (
	ErrMissingAPIKey  = errors.New("resend api key is empty")
	ErrInvalidMessage = errors.New("invalid email message")
)

// Message is one outgoing HTML email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	// Category is attached as a provider tag, e.g. "application_received".
	Category string
}

func (m Message) validate() error {
	switch {
	case m.From == "":
		return fmt.Errorf("%w: sender is empty", ErrInvalidMessage)
	case !strings.Contains(m.To, "@"):
		return fmt.Errorf("%w: recipient %q", ErrInvalidMessage, m.To)
	case m.Subject == "":
		return fmt.Errorf("%w: subject is empty", ErrInvalidMessage)
	case m.HTML == "":
		return fmt.Errorf("%w: body is empty", ErrInvalidMessage)
	}
	return nil
}

func (m Message) request() *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    m.From,
		To:      []string{m.To},
		ReplyTo: m.ReplyTo,
		Subject: m.Subject,
		Html:    m.HTML,
	}
	if m.Category != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: m.Category}}
	}
	return req
}

// Option customises the Resend client.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the client at another Resend-compatible endpoint.
func WithBaseURL(raw string) Option {
	return func(o *options) { o.baseURL = raw }
}

// WithHTTPClient replaces the default client, which times out after 10s.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

type ResendClient struct {
	client *resend.Client
	logger *observability.Logger
}

func NewResendClient(apiKey string, logger *observability.Logger, opts ...Option) (*ResendClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	o := options{httpClient: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(&o)
	}

	client := resend.NewCustomClient(o.httpClient, apiKey)
	if o.baseURL != "" {
		u, err := url.Parse(o.baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid resend base url %q", o.baseURL)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}

	return &ResendClient{
		client: client,
		logger: logger,
	}, nil
}

// Send delivers msg and returns the provider's message id.
func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.validate(); err != nil {
		return "", err
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: msg.To},
		observability.Field{Key: "email_category", Value: msg.Category},
	)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, err := c.client.Emails.Send(msg.request())
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info(ctx, "email sent", observability.Field{Key: "email_id", Value: res.Id})
	return res.Id, nil
}
