package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/ruteri/halow-dashboard/awsclient"
	"github.com/ruteri/halow-dashboard/interfaces"
)

const secretsManagerServiceName = "AWS Secrets Manager"

// SecretsManagerBackend enumerates secrets from AWS Secrets Manager.
type SecretsManagerBackend struct {
	client   secretsmanageriface.SecretsManagerAPI
	pageSize int64
	log      *slog.Logger
}

// NewSecretsManagerBackend creates a backend using the given AWS session.
// pageSize caps the number of secrets enumerated per listing.
func NewSecretsManagerBackend(sess *session.Session, pageSize int64, log *slog.Logger) *SecretsManagerBackend {
	return NewSecretsManagerBackendWithClient(secretsmanager.New(sess), pageSize, log)
}

func NewSecretsManagerBackendWithClient(client secretsmanageriface.SecretsManagerAPI, pageSize int64, log *slog.Logger) *SecretsManagerBackend {
	return &SecretsManagerBackend{
		client:   client,
		pageSize: pageSize,
		log:      log,
	}
}

func (b *SecretsManagerBackend) Name() string {
	return secretsManagerServiceName
}

// List enumerates one page of secrets, excluding those planned for deletion,
// and describes each of them to obtain tags. A secret whose description
// fails is kept with the listing's fields and empty tags.
func (b *SecretsManagerBackend) List(ctx context.Context) ([]interfaces.SecretDescriptor, error) {
	start := time.Now()

	out, err := b.client.ListSecretsWithContext(ctx, &secretsmanager.ListSecretsInput{
		MaxResults:             aws.Int64(b.pageSize),
		IncludePlannedDeletion: aws.Bool(false),
	})
	if err != nil {
		return nil, awsclient.Wrap(secretsManagerServiceName, "list secrets", err)
	}

	secrets := make([]interfaces.SecretDescriptor, 0, len(out.SecretList))
	for _, entry := range out.SecretList {
		if entry == nil || aws.StringValue(entry.Name) == "" {
			continue
		}
		secrets = append(secrets, b.describe(ctx, entry))
	}

	if out.NextToken != nil {
		b.log.Debug("Secrets listing truncated at page size",
			slog.Int64("pageSize", b.pageSize))
	}

	b.log.Debug("Listed secrets",
		slog.Int("count", len(secrets)),
		slog.Duration("duration", time.Since(start)))

	return secrets, nil
}

func (b *SecretsManagerBackend) describe(ctx context.Context, entry *secretsmanager.SecretListEntry) interfaces.SecretDescriptor {
	name := aws.StringValue(entry.Name)
	descriptor := interfaces.SecretDescriptor{
		Name:            name,
		ARN:             aws.StringValue(entry.ARN),
		Description:     aws.StringValue(entry.Description),
		Tags:            map[string]string{},
		CreatedDate:     entry.CreatedDate,
		LastChangedDate: entry.LastChangedDate,
	}

	detail, err := b.client.DescribeSecretWithContext(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		b.log.Warn("Failed to describe secret, listing it without tags",
			slog.String("secret", name),
			"err", err)
		return descriptor
	}

	descriptor.Tags = tagMap(detail.Tags)
	if detail.ARN != nil {
		descriptor.ARN = aws.StringValue(detail.ARN)
	}
	if detail.Description != nil {
		descriptor.Description = aws.StringValue(detail.Description)
	}
	if detail.CreatedDate != nil {
		descriptor.CreatedDate = detail.CreatedDate
	}
	if detail.LastChangedDate != nil {
		descriptor.LastChangedDate = detail.LastChangedDate
	}
	return descriptor
}

// tagMap rebuilds the tag map, dropping pairs missing a key or a value.
func tagMap(tags []*secretsmanager.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		key, value := aws.StringValue(tag.Key), aws.StringValue(tag.Value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
