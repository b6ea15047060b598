// Package storage implements the record store gateway of the dashboard.
//
// Two backends satisfy interfaces.RecordStore:
//
//   - DynamoDBBackend stores records in a DynamoDB table keyed by "id"
//   - MemoryBackend keeps records in process memory for local development
//
// Both assign the record timestamp at write time, ignoring any value supplied
// by the caller, and both treat deletes of unknown ids as success.
//
// # Errors
//
// DynamoDB failures are returned as *interfaces.UpstreamError. Connectivity
// and credential problems are classified as interfaces.ErrUpstreamUnavailable,
// permission problems as interfaces.ErrUpstreamAuth, everything else as
// interfaces.ErrUpstream. Nothing is retried.
//
// # Backend Selection
//
// NewRecordStore picks the backend from config.Config:
//
//	store, err := storage.NewRecordStore(cfg, logger)
//	if err != nil {
//		return err
//	}
//	records, err := store.ListAll(ctx)
package storage
