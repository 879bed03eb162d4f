package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:     os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName: os.Getenv("EMAIL_FROM_NAME"),
		logger:   logger,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h2>Welcome to PixelMuse, {{.FullName}}!</h2>
<p>Your account is ready. Upload an image, write a prompt and let the model do the rest.</p>
`))

var subscriptionActivatedTemplate = template.Must(template.New("subscription_activated").Parse(`
<h2>Your subscription is active</h2>
<p>Hi {{.FullName}}, your plan is now active with {{.QuotaLimit}} generations per billing period.</p>
`))

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, map[string]interface{}{"FullName": fullName}); err != nil {
		return err
	}

	return s.send(email, "Welcome to PixelMuse", body.String())
}

func (s *EmailService) SendSubscriptionActivatedEmail(email, fullName string, quotaLimit int) error {
	var body bytes.Buffer
	err := subscriptionActivatedTemplate.Execute(&body, map[string]interface{}{
		"FullName":   fullName,
		"QuotaLimit": quotaLimit,
	})
	if err != nil {
		return err
	}

	return s.send(email, "Your PixelMuse subscription is active", body.String())
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	return nil
}
