// events/sqs.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSPublisher sends registry events to an SQS queue as JSON messages.
type SQSPublisher struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSPublisher creates a publisher using the default AWS credential chain.
// A non-empty endpoint overrides the SQS endpoint, which is how LocalStack
// and ElasticMQ are reached in development.
func NewSQSPublisher(ctx context.Context, region, queueURL, endpoint string, timeout time.Duration) (*SQSPublisher, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if endpoint != "" {
		// Local SQS stand-ins accept any static credentials.
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &SQSPublisher{client: client, queueURL: queueURL}, nil
}

func (p *SQSPublisher) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	return err
}

// Close is a no-op; the underlying HTTP client needs no shutdown.
func (p *SQSPublisher) Close() error { return nil }

// HealthCheck returns a health check function compatible with the health package.
// It verifies connectivity by fetching the queue's attributes.
func (p *SQSPublisher) HealthCheck() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := p.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
			QueueUrl: aws.String(p.queueURL),
		})
		return err
	}
}
