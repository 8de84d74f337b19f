package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI is the part of the SES client the email service uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends login credentials through Amazon SES. Without a sender
// address it is disabled and every send is skipped.
type EmailService struct {
	client     sesAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates the email service
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		slog.InfoContext(ctx, "Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{appBaseURL: appBaseURL}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	slog.InfoContext(ctx, "Email service enabled", "from", fromEmail, "region", awsRegion)
	return newEmailService(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL), nil
}

func newEmailService(client sesAPI, fromEmail, fromName, appBaseURL string) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s != nil && s.enabled
}

// SendCredentialsEmail sends the one-time password issued by a promotion or
// password reset.
func (s *EmailService) SendCredentialsEmail(ctx context.Context, toEmail, toName, phone, password string) error {
	if !s.IsEnabled() {
		slog.InfoContext(ctx, "Skipping email send (service disabled)", "kind", "credentials")
		return nil
	}

	loginLink := s.appBaseURL + "/auth/login"
	subject := "Your Gotera Youth dashboard login"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #1f6f5c; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.code { font-family: monospace; font-size: 18px; background: #fff; padding: 8px 12px; border: 1px solid #ddd; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>Gotera Youth</h1></div>
		<div class="content">
			<p>Hi %s,</p>
			<p>You can now sign in to the Gotera Youth dashboard.</p>
			<p>Phone: <strong>%s</strong><br>Temporary password: <span class="code">%s</span></p>
			<p><a href="%s">Sign in</a> and change your password after your first login.</p>
		</div>
	</div>
</body>
</html>
`, html.EscapeString(toName), html.EscapeString(phone), html.EscapeString(password), loginLink)

	textBody := fmt.Sprintf(`Hi %s,

You can now sign in to the Gotera Youth dashboard.

Phone: %s
Temporary password: %s

Sign in: %s
`, toName, phone, password, loginLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	slog.InfoContext(ctx, "Email sent", "to", toEmail, "subject", subject, "message_id", aws.ToString(result.MessageId))
	return nil
}
