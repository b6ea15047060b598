// Package awsclient builds AWS SDK sessions for the gateways and classifies
// AWS errors into the interfaces error taxonomy.
package awsclient

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
)

// NewSession creates an AWS session for region. A non-empty endpoint
// overrides the service endpoint (LocalStack, DynamoDB Local, tests).
// Credentials come from the default provider chain so IAM roles work when
// running in EKS. Retries are disabled: each gateway call is one request.
func NewSession(region, endpoint string) (*session.Session, error) {
	cfg := aws.Config{
		Region:     aws.String(region),
		MaxRetries: aws.Int(0),
	}

	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return sess, nil
}
