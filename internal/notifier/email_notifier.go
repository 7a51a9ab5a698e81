package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/AlexSpeaker/shop-app/configs"
)

// SendEmail sends the payment confirmation through SES. Best effort: callers
// fire it after the payment transaction commits and only log failures.
func SendEmail(recipientEmail string, fullName string, orderID uint, total string) error {
	cfg := config.LoadEmailConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		log.Printf("Failed to load AWS SDK config for email to %s (order %d): %v", recipientEmail, orderID, err)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	if cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured in environment variables")
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject := fmt.Sprintf("Order #%d Paid - Thank You for Your Purchase!", orderID)

	name := fullName
	if name == "" {
		name = "customer"
	}

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Your payment for order #%d went through.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order ID: %d</li>
                <li>Total Paid: %s</li>
            </ul>
            <p>We'll send you another email when your order ships.</p>
            <p>Best regards,</p>
            <p>The Shop Team</p>
        </body>
        </html>`, name, orderID, orderID, total)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nYour payment for order #%d went through.\n\n"+
			"Order Details:\nOrder ID: %d\nTotal Paid: %s\n\n"+
			"We'll send you another email when your order ships.\n\nBest regards,\nThe Shop Team",
		name, orderID, orderID, total)

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(bodyHTML)},
				Text: &types.Content{Data: aws.String(bodyText)},
			},
		},
	}

	if _, err := client.SendEmail(context.TODO(), input); err != nil {
		log.Printf("Failed to send email to %s (order %d): %v", recipientEmail, orderID, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
