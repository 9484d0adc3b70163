package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"jobmatch/internal/clients/mail"
	"jobmatch/internal/observability"
	"jobmatch/internal/store"
)

var (
	ErrInvalidEmailAddress = errors.New("invalid email address")
	ErrSendingEmail        = errors.New("error sending email")
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// Service renders and sends the application emails.
type Service struct {
	sender    Sender
	from      string
	logger    *observability.Logger
	templates *template.Template
}

const templates = `
{{define "application_received"}}
<html>
	<body>
		<h1>New application for {{.JobTitle}}</h1>
		<p>Hi {{.RecipientName}},</p>
		<p>{{.ApplicantName}} applied to <strong>{{.JobTitle}}</strong> at {{.Company}}.</p>
		<p>Review it from your job's applications list.</p>
	</body>
</html>
{{end}}
{{define "application_status"}}
<html>
	<body>
		<h1>Your application was {{.Status}}</h1>
		<p>Hi {{.RecipientName}},</p>
		<p>Your application to <strong>{{.JobTitle}}</strong> at {{.Company}} is now <strong>{{.Status}}</strong>.</p>
	</body>
</html>
{{end}}
`

type templateData struct {
	RecipientName string
	ApplicantName string
	JobTitle      string
	Company       string
	Status        string
}

func New(sender Sender, from string, logger *observability.Logger) *Service {
	return &Service{
		sender:    sender,
		from:      from,
		logger:    logger,
		templates: template.Must(template.New("email").Parse(templates)),
	}
}

// ApplicationReceived tells the employer that someone applied to their job.
func (s *Service) ApplicationReceived(ctx context.Context, employer store.User, job store.Job, applicant store.User) error {
	subject := fmt.Sprintf("New application: %s", job.Title)
	return s.send(ctx, employer.Email, applicant.Email, subject, "application_received", templateData{
		RecipientName: employer.Name,
		ApplicantName: applicant.Name,
		JobTitle:      job.Title,
		Company:       job.Company,
	})
}

// ApplicationStatusChanged tells the applicant about a review decision.
func (s *Service) ApplicationStatusChanged(ctx context.Context, applicant store.User, job store.Job, status string) error {
	subject := fmt.Sprintf("Application update: %s", job.Title)
	return s.send(ctx, applicant.Email, "", subject, "application_status", templateData{
		RecipientName: applicant.Name,
		JobTitle:      job.Title,
		Company:       job.Company,
		Status:        status,
	})
}

// send renders the named template to to. replyTo may be empty.
func (s *Service) send(ctx context.Context, to, replyTo, subject, name string, data templateData) error {
	if !strings.Contains(to, "@") {
		return ErrInvalidEmailAddress
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		s.logger.Error(ctx, "failed to render email template", err, observability.Field{Key: "template", Value: name})
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	msg := mail.Message{
		From:     s.from,
		To:       to,
		Subject:  subject,
		HTML:     body.String(),
		Category: name,
	}
	if strings.Contains(replyTo, "@") {
		msg.ReplyTo = replyTo
	}
	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendingEmail, err)
	}
	return nil
}
