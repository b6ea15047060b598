package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/ruteri/halow-dashboard/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockSecretsManager implements the subset of secretsmanageriface.SecretsManagerAPI used by the backend
type mockSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	mock.Mock
}

func (m *mockSecretsManager) ListSecretsWithContext(ctx aws.Context, in *secretsmanager.ListSecretsInput, _ ...request.Option) (*secretsmanager.ListSecretsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsmanager.ListSecretsOutput), args.Error(1)
}

func (m *mockSecretsManager) DescribeSecretWithContext(ctx aws.Context, in *secretsmanager.DescribeSecretInput, _ ...request.Option) (*secretsmanager.DescribeSecretOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsmanager.DescribeSecretOutput), args.Error(1)
}

func describeFor(name string) interface{} {
	return mock.MatchedBy(func(in *secretsmanager.DescribeSecretInput) bool {
		return aws.StringValue(in.SecretId) == name
	})
}

func newTestSecretsManagerBackend(client *mockSecretsManager) *SecretsManagerBackend {
	return NewSecretsManagerBackendWithClient(client, 100, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSecretsManagerBackend_List(t *testing.T) {
	client := new(mockSecretsManager)
	backend := newTestSecretsManagerBackend(client)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	changed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	client.On("ListSecretsWithContext", mock.Anything, mock.MatchedBy(func(in *secretsmanager.ListSecretsInput) bool {
		return aws.Int64Value(in.MaxResults) == 100 && !aws.BoolValue(in.IncludePlannedDeletion)
	})).Return(&secretsmanager.ListSecretsOutput{
		SecretList: []*secretsmanager.SecretListEntry{
			{Name: aws.String("prod/db"), ARN: aws.String("arn:aws:secretsmanager:us-east-1:1:secret:prod/db")},
			{ARN: aws.String("arn:nameless")},
		},
	}, nil)

	client.On("DescribeSecretWithContext", mock.Anything, describeFor("prod/db")).Return(&secretsmanager.DescribeSecretOutput{
		Name:            aws.String("prod/db"),
		Description:     aws.String("Primary database"),
		CreatedDate:     aws.Time(created),
		LastChangedDate: aws.Time(changed),
		Tags: []*secretsmanager.Tag{
			{Key: aws.String("env"), Value: aws.String("prod")},
			{Key: aws.String("empty-value"), Value: aws.String("")},
			{Value: aws.String("no-key")},
			{Key: aws.String("team"), Value: aws.String("data")},
		},
	}, nil)

	secrets, err := backend.List(context.Background())
	require.NoError(t, err)
	require.Len(t, secrets, 1, "entries without a name are skipped")

	s := secrets[0]
	assert.Equal(t, "prod/db", s.Name)
	assert.Equal(t, "arn:aws:secretsmanager:us-east-1:1:secret:prod/db", s.ARN)
	assert.Equal(t, "Primary database", s.Description)
	assert.Equal(t, map[string]string{"env": "prod", "team": "data"}, s.Tags)
	require.NotNil(t, s.CreatedDate)
	assert.True(t, created.Equal(*s.CreatedDate))
	require.NotNil(t, s.LastChangedDate)
	assert.True(t, changed.Equal(*s.LastChangedDate))

	client.AssertExpectations(t)
}

func TestSecretsManagerBackend_List_DescribeFailureKeepsSecret(t *testing.T) {
	client := new(mockSecretsManager)
	backend := newTestSecretsManagerBackend(client)

	client.On("ListSecretsWithContext", mock.Anything, mock.Anything).Return(&secretsmanager.ListSecretsOutput{
		SecretList: []*secretsmanager.SecretListEntry{
			{Name: aws.String("a"), Description: aws.String("first")},
			{Name: aws.String("b"), Description: aws.String("second"), ARN: aws.String("arn:b")},
			{Name: aws.String("c")},
		},
	}, nil)
	client.On("DescribeSecretWithContext", mock.Anything, describeFor("a")).Return(&secretsmanager.DescribeSecretOutput{
		Tags: []*secretsmanager.Tag{{Key: aws.String("env"), Value: aws.String("prod")}},
	}, nil)
	client.On("DescribeSecretWithContext", mock.Anything, describeFor("b")).
		Return(nil, awserr.New("AccessDeniedException", "not allowed to describe b", nil))
	client.On("DescribeSecretWithContext", mock.Anything, describeFor("c")).Return(&secretsmanager.DescribeSecretOutput{}, nil)

	secrets, err := backend.List(context.Background())
	require.NoError(t, err)
	require.Len(t, secrets, 3)

	assert.Equal(t, "a", secrets[0].Name)
	assert.Equal(t, map[string]string{"env": "prod"}, secrets[0].Tags)
	assert.Equal(t, "first", secrets[0].Description)

	assert.Equal(t, "b", secrets[1].Name)
	assert.Equal(t, "arn:b", secrets[1].ARN)
	assert.Equal(t, "second", secrets[1].Description)
	assert.NotNil(t, secrets[1].Tags)
	assert.Empty(t, secrets[1].Tags)

	assert.Equal(t, "c", secrets[2].Name)
	assert.Equal(t, "", secrets[2].ARN)
}

func TestSecretsManagerBackend_List_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"credentials", awserr.New("NoCredentialProviders", "no valid providers in chain", nil), interfaces.ErrUpstreamUnavailable},
		{"access denied", awserr.New("AccessDeniedException", "denied", nil), interfaces.ErrUpstreamAuth},
		{"other", awserr.New("InternalServiceError", "boom", nil), interfaces.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockSecretsManager)
			backend := newTestSecretsManagerBackend(client)
			client.On("ListSecretsWithContext", mock.Anything, mock.Anything).Return(nil, tt.err)

			secrets, err := backend.List(context.Background())
			assert.Nil(t, secrets)
			assert.ErrorIs(t, err, tt.target)

			client.AssertNotCalled(t, "DescribeSecretWithContext", mock.Anything, mock.Anything)
		})
	}
}

func TestTagMap(t *testing.T) {
	tags := tagMap([]*secretsmanager.Tag{
		nil,
		{Key: aws.String("k"), Value: aws.String("v")},
		{Key: aws.String("k2")},
	})
	assert.Equal(t, map[string]string{"k": "v"}, tags)
}
