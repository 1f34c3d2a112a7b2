package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type FounderInvitation struct {
	FounderName string
	CompanyName string
	Role        string
	InviteURL   string
}

type SignatureRequest struct {
	SignerName    string
	DocumentTitle string
	CompanyName   string
	SignURL       string
}

type IEmailService interface {
	SendFounderInvitation(toEmail string, data FounderInvitation) error
	SendSignatureRequest(toEmail string, data SignatureRequest) error
}

var (
	invitationTemplate = template.Must(template.New("invite").Parse(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>You're invited to join {{.CompanyName}}</h2>
			<p>Hi {{.FounderName}},</p>
			<p>You have been added as {{if .Role}}{{.Role}}{{else}}a founder{{end}} of {{.CompanyName}} on incorporate.run.</p>
			<a href="{{.InviteURL}}" style="background-color: #111827; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open dashboard</a>
		</div>
	`))

	signatureTemplate = template.Must(template.New("sign").Parse(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Signature requested: {{.DocumentTitle}}</h2>
			<p>Hi {{.SignerName}},</p>
			<p>{{.CompanyName}} has asked you to review and sign "{{.DocumentTitle}}".</p>
			<a href="{{.SignURL}}" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Review and sign</a>
			<p>Or copy this link:</p>
			<p>{{.SignURL}}</p>
			<p>This link can be used once.</p>
		</div>
	`))
)

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderName string, log logger.ILogger) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) send(toEmail, subject string, tpl *template.Template, data interface{}) error {
	var body bytes.Buffer
	if err := tpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s: %w", tpl.Name(), err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send email", map[string]interface{}{
			"to": toEmail, "template": tpl.Name(), "error": err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Email sent", map[string]interface{}{"to": toEmail, "template": tpl.Name()})
	return nil
}

func (s *emailService) SendFounderInvitation(toEmail string, data FounderInvitation) error {
	return s.send(toEmail, fmt.Sprintf("Join %s on incorporate.run", data.CompanyName), invitationTemplate, data)
}

func (s *emailService) SendSignatureRequest(toEmail string, data SignatureRequest) error {
	return s.send(toEmail, fmt.Sprintf("Please sign: %s", data.DocumentTitle), signatureTemplate, data)
}

type disabledEmailService struct{}

// NewDisabledEmailService is used when SMTP is not configured. Every send
// fails with ErrUnavailable so outbox intents stay retriable.
func NewDisabledEmailService() IEmailService {
	return disabledEmailService{}
}

func (disabledEmailService) SendFounderInvitation(string, FounderInvitation) error {
	return fmt.Errorf("smtp: %w", apperror.ErrUnavailable)
}

func (disabledEmailService) SendSignatureRequest(string, SignatureRequest) error {
	return fmt.Errorf("smtp: %w", apperror.ErrUnavailable)
}
