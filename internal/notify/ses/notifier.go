// Package ses emails a link to a finished export file.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/praxislab/comptrack/internal/model"
)

type sesAPI interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

var _ model.Notifier = (*Notifier)(nil)

// Notifier sends export-ready emails through SES.
type Notifier struct {
	api    sesAPI
	bucket string
	from   string
	to     string
}

// NewNotifier creates a Notifier over a real SES client.
func NewNotifier(client *sesv2.Client, bucket, from, to string) *Notifier {
	return NewNotifierWithAPI(client, bucket, from, to)
}

// NewNotifierWithAPI allows injecting a mockable API (used in tests).
func NewNotifierWithAPI(api sesAPI, bucket, from, to string) *Notifier {
	return &Notifier{api: api, bucket: bucket, from: from, to: to}
}

// NotifyExport emails the recipient where the export file landed.
func (n *Notifier) NotifyExport(ctx context.Context, path string) error {
	subject := "Evaluation export ready"
	body := fmt.Sprintf("The evaluations export you requested is available at s3://%s/%s", n.bucket, path)

	_, err := n.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{n.to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send export notification: %w", err)
	}
	return nil
}
