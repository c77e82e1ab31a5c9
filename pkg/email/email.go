package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"go-interview-backend/config"
)

// EmailService sends transactional mail through the Brevo SMTP relay.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		fromName:  cfg.SMTPFromName,
	}
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Send delivers a single HTML email. It reports only success or failure;
// retries and bounce handling are the provider's concern.
func (s *EmailService) Send(ctx context.Context, to, recipientName, subject, htmlBody string) error {
	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromName,
		s.fromEmail,
		recipientName,
		to,
		subject,
		htmlBody,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// inviteTemplate is the HTML body for interview invitations.
const inviteTemplate = `<html><body>
<p>Hi {{.Name}},<br><br>
You have been scheduled for a <b>{{.InterviewType}}</b> interview.<br><br>
{{if .Link}}View your interview: <a href="{{.Link}}">{{.Link}}</a><br><br>{{end}}
Good luck!</p>
</body></html>`

// rejectionTemplate is the HTML body for application rejections.
const rejectionTemplate = `<html><body>
<p>Hi {{.Name}},<br><br>
Thank you for your interest. Unfortunately we are not proceeding with your application this time.</p>
</body></html>`

type InviteEmailData struct {
	Name          string
	InterviewType string
	Link          string
}

type RejectionEmailData struct {
	Name string
}

func BuildInviteBody(data InviteEmailData) (string, error) {
	return render("invite", inviteTemplate, data)
}

func BuildRejectionBody(data RejectionEmailData) (string, error) {
	return render("rejection", rejectionTemplate, data)
}

func render(name, tmplText string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
