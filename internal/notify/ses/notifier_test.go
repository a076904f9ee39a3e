package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	err  error
	sent []*sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, input *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, input)
	return &sesv2.SendEmailOutput{}, nil
}

func TestNotifyExport(t *testing.T) {
	fake := &fakeSES{}
	n := NewNotifierWithAPI(fake, "exports", "noreply@example.edu", "registrar@example.edu")

	require.NoError(t, n.NotifyExport(context.Background(), "export/run.csv"))
	require.Len(t, fake.sent, 1)

	msg := fake.sent[0]
	assert.Equal(t, "noreply@example.edu", *msg.FromEmailAddress)
	assert.Equal(t, []string{"registrar@example.edu"}, msg.Destination.ToAddresses)
	assert.Contains(t, *msg.Content.Simple.Body.Text.Data, "s3://exports/export/run.csv")
}

func TestNotifyExport_SendFails(t *testing.T) {
	fake := &fakeSES{err: errors.New("MessageRejected")}
	n := NewNotifierWithAPI(fake, "exports", "noreply@example.edu", "registrar@example.edu")

	err := n.NotifyExport(context.Background(), "export/run.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send export notification")
}
