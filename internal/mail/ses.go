// internal/mail/ses.go
package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"ponto-intake/internal/common/logger"
)

// SESAPI is the slice of the SES client the transport uses, for mocking.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESTransport sends mail through AWS SES.
type SESTransport struct {
	client SESAPI
	logger logger.Logger
}

func NewSESTransport(ctx context.Context, region string, log logger.Logger) (*SESTransport, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESTransport{
		client: ses.NewFromConfig(awsCfg),
		logger: log.WithFields(map[string]interface{}{"transport": "ses"}),
	}, nil
}

// NewSESTransportWithClient wires an existing client, used by tests.
func NewSESTransportWithClient(client SESAPI, log logger.Logger) *SESTransport {
	return &SESTransport{
		client: client,
		logger: log.WithFields(map[string]interface{}{"transport": "ses"}),
	}
}

func (t *SESTransport) Send(ctx context.Context, msg Message) error {
	_, err := t.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML)},
			},
		},
		Source: aws.String(msg.From),
	})
	return err
}
