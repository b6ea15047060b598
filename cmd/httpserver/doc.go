// Package main (cmd/httpserver) runs the halow dashboard.
//
// The server renders the record dashboard backed by a DynamoDB table (or an
// in-memory store for local runs) and a read-only browser over a secret
// registry (AWS Secrets Manager or a Vault KV v2 mount). Probe endpoints
// answer orchestration health checks; Prometheus metrics are served on a
// separate listener.
//
// Every flag can also be set through its environment variable, e.g. PORT,
// AWS_REGION, DYNAMODB_TABLE_NAME or NODE_ENV.
//
// Example usage against DynamoDB Local:
//
//	halow-dashboard --port=3400 \
//	    --table-name=halow-data \
//	    --dynamodb-endpoint=http://localhost:8000 \
//	    --environment=development
//
// Example usage without AWS, browsing Vault:
//
//	halow-dashboard --record-store=memory \
//	    --secret-registry=vault \
//	    --vault-addr=http://127.0.0.1:8200 --vault-mount=secret
package main
