package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending notification emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. When fromEmail is empty the
// service is disabled and every send becomes a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendApprovalEmail notifies a volunteer that their account has been approved
func (s *EmailService) SendApprovalEmail(ctx context.Context, toEmail string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): approval to %s", toEmail)
		return nil
	}

	subject := "Your Skillbridge volunteer account has been approved"
	htmlBody := `
<html>
<body>
	<p>Good news!</p>
	<p>An administrator has approved your volunteer account. You can now create offerings, schedule engagements and share videos.</p>
	<p>Thanks for volunteering with Skillbridge.</p>
</body>
</html>
`
	textBody := `Good news!

An administrator has approved your volunteer account. You can now create offerings, schedule engagements and share videos.

Thanks for volunteering with Skillbridge.
`

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendEnrollmentEmail confirms an enrollment to the guardian
func (s *EmailService) SendEnrollmentEmail(ctx context.Context, toEmail, dependentName, engagementTitle string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): enrollment confirmation to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("Enrollment confirmed: %s", engagementTitle)
	htmlBody := fmt.Sprintf(`
<html>
<body>
	<p>Hi,</p>
	<p>%s has been enrolled in <strong>%s</strong>.</p>
	<p>You will find the meeting link and schedule in your Skillbridge dashboard.</p>
</body>
</html>
`, dependentName, engagementTitle)

	textBody := fmt.Sprintf(`Hi,

%s has been enrolled in %s.

You will find the meeting link and schedule in your Skillbridge dashboard.
`, dependentName, engagementTitle)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
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

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
