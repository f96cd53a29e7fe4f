// Package notify sends transactional email for loan-application and
// contact-form events through AWS SES. Delivery is best effort: failures are
// logged and never surface to the submitting client.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Email is a single outbound message.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers email. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, e Email) error
	Close() error
}

// SESSender sends email via AWS SES using the SDK v2. The client is built
// lazily on first send so boot never blocks on AWS config resolution.
type SESSender struct {
	region    string
	accessKey string
	secretKey string

	mu     sync.Mutex
	client *sesv2.Client
}

// NewSESSender creates an SES sender. With empty credentials the SDK's
// default provider chain is used.
func NewSESSender(region, accessKey, secretKey string) *SESSender {
	if region == "" {
		region = "us-east-1"
	}
	return &SESSender{region: region, accessKey: accessKey, secretKey: secretKey}
}

func (s *SESSender) getClient(ctx context.Context) (*sesv2.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.region)}
	if s.accessKey != "" && s.secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.accessKey, s.secretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	s.client = sesv2.NewFromConfig(cfg)
	return s.client, nil
}

// Send implements Sender.
func (s *SESSender) Send(ctx context.Context, e Email) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(e.From),
		Destination:      &types.Destination{ToAddresses: e.To},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(e.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(e.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if e.Text != "" {
		input.Content.Simple.Body.Text = &types.Content{Data: aws.String(e.Text), Charset: aws.String("UTF-8")}
	}

	if _, err := client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

// Close implements Sender. The SES client holds no connections to release.
func (s *SESSender) Close() error { return nil }
