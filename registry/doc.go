// Package registry implements the secret registry gateway of the dashboard.
//
// A Registry wraps a Backend that enumerates secret descriptors from an
// external catalog and adds client-side text search and tag filtering.
// Descriptors are fetched fresh on every call; nothing is cached.
//
// # Backends
//
//   - SecretsManagerBackend lists AWS Secrets Manager secrets and describes
//     each one to obtain its tags
//   - VaultBackend lists a HashiCorp Vault KV v2 path and reads each entry's
//     metadata, using custom metadata as tags
//
// Both enumerate a single page of at most the configured page size. A failed
// detail fetch does not abort the listing: the secret is still returned, with
// empty tags.
//
// # Errors
//
// Listing failures are returned as *interfaces.UpstreamError so callers can
// tell unavailable registries (connectivity, credentials) from denied access
// and from everything else.
package registry
