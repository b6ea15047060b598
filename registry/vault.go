package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/ruteri/halow-dashboard/interfaces"
)

const vaultServiceName = "Vault"

// descriptionKey is the custom metadata entry used as the secret description.
const descriptionKey = "description"

// VaultBackend enumerates secrets stored under one HashiCorp Vault KV v2 path.
// Custom metadata entries become tags. Sub-folders are not descended into.
type VaultBackend struct {
	client      *api.Client
	mountPath   string
	dataPath    string
	pageSize    int64
	log         *slog.Logger
	locationURI string
}

// NewVaultBackend creates a Vault secret registry backend.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - token: Vault token; when empty the client falls back to VAULT_TOKEN
//   - mountPath: KV v2 mount path (e.g. "secret")
//   - dataPath: path within the mount to enumerate, may be empty
//   - pageSize: maximum number of secrets per listing
//   - log: Structured logger for operational insights
func NewVaultBackend(address, token, mountPath, dataPath string, pageSize int64, log *slog.Logger) (*VaultBackend, error) {
	config := api.DefaultConfig()
	if config.Error != nil {
		return nil, fmt.Errorf("failed to read Vault environment: %w", config.Error)
	}
	if address != "" {
		config.Address = address
	}
	config.MaxRetries = 0

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if token != "" {
		client.SetToken(token)
	}

	mountPath = strings.Trim(mountPath, "/")
	dataPath = strings.Trim(dataPath, "/")

	host := client.Address()
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}

	return &VaultBackend{
		client:      client,
		mountPath:   mountPath,
		dataPath:    dataPath,
		pageSize:    pageSize,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s", host, path.Join(mountPath, dataPath)),
	}, nil
}

func (b *VaultBackend) Name() string {
	return vaultServiceName
}

// LocationURI returns the URI of the enumerated path.
func (b *VaultBackend) LocationURI() string {
	return b.locationURI
}

// List enumerates the keys under the configured path and reads each key's
// metadata. A key whose metadata cannot be read is kept with empty tags.
func (b *VaultBackend) List(ctx context.Context) ([]interfaces.SecretDescriptor, error) {
	start := time.Now()
	listPath := path.Join(b.mountPath, "metadata", b.dataPath)

	secret, err := b.client.Logical().ListWithContext(ctx, listPath)
	if err != nil {
		return nil, b.wrap("list", err)
	}
	if secret == nil || secret.Data == nil {
		return []interfaces.SecretDescriptor{}, nil
	}

	rawKeys, _ := secret.Data["keys"].([]interface{})
	keys := make([]string, 0, len(rawKeys))
	for _, raw := range rawKeys {
		key, ok := raw.(string)
		if !ok || key == "" || strings.HasSuffix(key, "/") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if int64(len(keys)) > b.pageSize {
		b.log.Debug("Vault listing truncated at page size",
			slog.Int("keys", len(keys)),
			slog.Int64("pageSize", b.pageSize))
		keys = keys[:b.pageSize]
	}

	secrets := make([]interfaces.SecretDescriptor, 0, len(keys))
	for _, key := range keys {
		secrets = append(secrets, b.describe(ctx, key))
	}

	b.log.Debug("Listed Vault secrets",
		slog.String("path", listPath),
		slog.Int("count", len(secrets)),
		slog.Duration("duration", time.Since(start)))

	return secrets, nil
}

func (b *VaultBackend) describe(ctx context.Context, key string) interfaces.SecretDescriptor {
	name := path.Join(b.dataPath, key)
	descriptor := interfaces.SecretDescriptor{
		Name: name,
		ARN:  fmt.Sprintf("%s/%s", strings.TrimSuffix(b.locationURI, "/"), key),
		Tags: map[string]string{},
	}

	metadataPath := path.Join(b.mountPath, "metadata", name)
	secret, err := b.client.Logical().ReadWithContext(ctx, metadataPath)
	if err != nil || secret == nil || secret.Data == nil {
		b.log.Warn("Failed to read Vault secret metadata, listing it without tags",
			slog.String("path", metadataPath),
			"err", err)
		return descriptor
	}

	descriptor.CreatedDate = parseVaultTime(secret.Data["created_time"])
	descriptor.LastChangedDate = parseVaultTime(secret.Data["updated_time"])

	custom, _ := secret.Data["custom_metadata"].(map[string]interface{})
	for k, raw := range custom {
		value, ok := raw.(string)
		if !ok || k == "" || value == "" {
			continue
		}
		if k == descriptionKey {
			descriptor.Description = value
			continue
		}
		descriptor.Tags[k] = value
	}
	return descriptor
}

func (b *VaultBackend) wrap(op string, err error) error {
	return &interfaces.UpstreamError{
		Service: vaultServiceName,
		Op:      op,
		Kind:    vaultErrorKind(err),
		Err:     err,
	}
}

// vaultErrorKind classifies Vault client errors. 403 is how Vault reports
// both bad tokens and missing policy grants, so it maps to auth.
func vaultErrorKind(err error) interfaces.ErrorKind {
	var respErr *api.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusForbidden:
			return interfaces.KindAuth
		case http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return interfaces.KindUnavailable
		}
		return interfaces.KindOther
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return interfaces.KindUnavailable
	}
	return interfaces.KindOther
}

func parseVaultTime(raw interface{}) *time.Time {
	s, ok := raw.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
