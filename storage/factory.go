package storage

import (
	"fmt"
	"log/slog"

	"github.com/ruteri/halow-dashboard/awsclient"
	"github.com/ruteri/halow-dashboard/config"
	"github.com/ruteri/halow-dashboard/interfaces"
)

// NewRecordStore creates the record store selected by cfg.RecordStore.
//
// Supported backends:
//   - dynamodb - DynamoDB table cfg.TableName in cfg.Region, optionally at cfg.DynamoDBEndpoint
//   - memory - process-local store, contents are lost on restart
func NewRecordStore(cfg *config.Config, log *slog.Logger) (interfaces.RecordStore, error) {
	switch cfg.RecordStore {
	case config.RecordStoreDynamoDB:
		log.Debug("Creating DynamoDB record store",
			slog.String("table", cfg.TableName),
			slog.String("region", cfg.Region),
			slog.String("endpoint", cfg.DynamoDBEndpoint))

		sess, err := awsclient.NewSession(cfg.Region, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, err
		}
		return NewDynamoDBBackend(sess, cfg.TableName, log), nil
	case config.RecordStoreMemory:
		log.Warn("Using in-memory record store, records are lost on restart")
		return NewMemoryBackend(log), nil
	default:
		return nil, fmt.Errorf("unsupported record store: %s", cfg.RecordStore)
	}
}
