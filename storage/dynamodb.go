package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/ruteri/halow-dashboard/awsclient"
	"github.com/ruteri/halow-dashboard/interfaces"
)

const dynamoDBServiceName = "DynamoDB"

// DynamoDBBackend implements interfaces.RecordStore on a DynamoDB table
// keyed by the string attribute "id".
type DynamoDBBackend struct {
	client    dynamodbiface.DynamoDBAPI
	tableName string
	log       *slog.Logger
	now       func() time.Time
}

// NewDynamoDBBackend creates a record store for tableName using the given
// AWS session.
func NewDynamoDBBackend(sess *session.Session, tableName string, log *slog.Logger) *DynamoDBBackend {
	return NewDynamoDBBackendWithClient(dynamodb.New(sess), tableName, log)
}

// NewDynamoDBBackendWithClient creates a record store around an existing
// DynamoDB client.
func NewDynamoDBBackendWithClient(client dynamodbiface.DynamoDBAPI, tableName string, log *slog.Logger) *DynamoDBBackend {
	return &DynamoDBBackend{
		client:    client,
		tableName: tableName,
		log:       log,
		now:       time.Now,
	}
}

// Name returns the label used in logs and degraded notices.
func (b *DynamoDBBackend) Name() string {
	return dynamoDBServiceName
}

// TableName returns the backing table.
func (b *DynamoDBBackend) TableName() string {
	return b.tableName
}

// ListAll scans the table once and returns the items in scan order.
// Only the first scan page is read.
func (b *DynamoDBBackend) ListAll(ctx context.Context) ([]interfaces.Record, error) {
	start := time.Now()

	out, err := b.client.ScanWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(b.tableName),
	})
	if err != nil {
		b.log.Error("Failed to scan DynamoDB table",
			slog.String("table", b.tableName),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, awsclient.Wrap(dynamoDBServiceName, "scan", err)
	}

	records := make([]interfaces.Record, 0, len(out.Items))
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, fmt.Errorf("failed to decode DynamoDB items: %w", err)
	}

	b.log.Debug("Scanned DynamoDB table",
		slog.String("table", b.tableName),
		slog.Int("count", len(records)),
		slog.Duration("duration", time.Since(start)))

	return records, nil
}

// Get fetches one record. A missing item yields nil without error.
func (b *DynamoDBBackend) Get(ctx context.Context, id string) (*interfaces.Record, error) {
	out, err := b.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(b.tableName),
		Key:       recordKey(id),
	})
	if err != nil {
		b.log.Error("Failed to get item from DynamoDB",
			slog.String("table", b.tableName),
			slog.String("id", id),
			"err", err)
		return nil, awsclient.Wrap(dynamoDBServiceName, "get", err)
	}

	if len(out.Item) == 0 {
		return nil, nil
	}

	var record interfaces.Record
	if err := dynamodbattribute.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to decode DynamoDB item %s: %w", id, err)
	}
	return &record, nil
}

// Put writes the record with a fresh server-side timestamp.
func (b *DynamoDBBackend) Put(ctx context.Context, record interfaces.Record) error {
	record.Timestamp = interfaces.FormatTimestamp(b.now())

	item, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", record.ID, err)
	}

	_, err = b.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.tableName),
		Item:      item,
	})
	if err != nil {
		b.log.Error("Failed to put item to DynamoDB",
			slog.String("table", b.tableName),
			slog.String("id", record.ID),
			"err", err)
		return awsclient.Wrap(dynamoDBServiceName, "put", err)
	}

	b.log.Debug("Stored record in DynamoDB",
		slog.String("table", b.tableName),
		slog.String("id", record.ID))
	return nil
}

// Delete removes the item. DynamoDB deletes are idempotent.
func (b *DynamoDBBackend) Delete(ctx context.Context, id string) error {
	_, err := b.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(b.tableName),
		Key:       recordKey(id),
	})
	if err != nil {
		b.log.Error("Failed to delete item from DynamoDB",
			slog.String("table", b.tableName),
			slog.String("id", id),
			"err", err)
		return awsclient.Wrap(dynamoDBServiceName, "delete", err)
	}
	return nil
}

func recordKey(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"id": {S: aws.String(id)},
	}
}
