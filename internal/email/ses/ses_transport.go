// Package ses delivers mail through AWS SESv2.
package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"mathsolver/internal/port"
)

type sesTransport struct {
	client *sesv2.Client
	sender string
}

// NewTransport creates a SES-backed MailTransport.
func NewTransport(region, sender string) (port.MailTransport, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesTransport{
		client: sesv2.NewFromConfig(cfg),
		sender: sender,
	}, nil
}

func (t *sesTransport) Send(ctx context.Context, m port.OutboundMail) error {
	body := &types.Body{
		Text: &types.Content{Data: &m.TextBody},
	}
	if m.HTMLBody != "" {
		body.Html = &types.Content{Data: &m.HTMLBody}
	}

	_, err := t.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &t.sender,
		Destination: &types.Destination{
			ToAddresses: []string{m.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &m.Subject},
				Body:    body,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
