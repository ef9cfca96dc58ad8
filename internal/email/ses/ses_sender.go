package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"amorlias/internal/config"
	"amorlias/internal/email"
	"amorlias/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	from        string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, cfg *config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		from:        fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		frontendURL: cfg.FrontendURL,
	}, nil
}

func (s *sesSender) SendOrderShippedEmail(ctx context.Context, toEmail, toName string, msg port.ShipmentEmail) error {
	m := email.ShipmentMessage(toName, s.frontendURL, msg)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(m.Subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(m.HTML)},
					Text: &types.Content{Data: aws.String(m.Text)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail %s: %w", msg.OrderNumber, err)
	}
	return nil
}
