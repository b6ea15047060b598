// Package config holds the process configuration of the dashboard.
//
// A Config is built once at startup (see cmd/flags) and injected into the
// gateways and handlers. Request-handling code never reads environment
// variables directly.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

const (
	RecordStoreDynamoDB = "dynamodb"
	RecordStoreMemory   = "memory"

	SecretRegistrySecretsManager = "secretsmanager"
	SecretRegistryVault          = "vault"
)

// Defaults applied when a setting is not provided.
const (
	DefaultPort            = 3400
	DefaultListenHost      = "0.0.0.0"
	DefaultRegion          = "us-east-1"
	DefaultTableName       = "halow-data"
	DefaultEnvironment     = "development"
	DefaultServiceName     = "halow"
	DefaultSecretsPageSize = 100
	DefaultVaultMount      = "secret"

	// MaxSecretsManagerPageSize is the largest MaxResults ListSecrets accepts.
	MaxSecretsManagerPageSize = 100
)

// Config is the dashboard's runtime configuration.
type Config struct {
	// ListenHost and Port form the API listen address.
	ListenHost string
	Port       int

	// Region selects the AWS region for both the table and the registry.
	Region string

	// TableName is the DynamoDB table holding dashboard records.
	TableName string

	// DynamoDBEndpoint optionally overrides the DynamoDB endpoint.
	DynamoDBEndpoint string

	// RegistryEndpoint optionally overrides the Secrets Manager endpoint
	// (local or test wiring).
	RegistryEndpoint string

	// Environment is the deployment label shown on every page.
	Environment string

	// ServiceName is reported by the probe endpoints.
	ServiceName string

	// RecordStore selects the record store backend.
	RecordStore string

	// SecretRegistry selects the secret registry backend.
	SecretRegistry string

	// SecretsPageSize caps how many secrets a listing enumerates.
	// Listings never follow up with further pages.
	SecretsPageSize int64

	Vault VaultConfig
}

// VaultConfig configures the Vault KV v2 secret registry backend.
type VaultConfig struct {
	Addr  string
	Token string
	Mount string
	Path  string
}

// Default returns a Config with every documented default applied.
func Default() *Config {
	return &Config{
		ListenHost:      DefaultListenHost,
		Port:            DefaultPort,
		Region:          DefaultRegion,
		TableName:       DefaultTableName,
		Environment:     DefaultEnvironment,
		ServiceName:     DefaultServiceName,
		RecordStore:     RecordStoreDynamoDB,
		SecretRegistry:  SecretRegistrySecretsManager,
		SecretsPageSize: DefaultSecretsPageSize,
		Vault: VaultConfig{
			Mount: DefaultVaultMount,
		},
	}
}

// ListenAddr returns host:port for the API listener.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.Port))
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Region == "" {
		return errors.New("region is required")
	}
	if c.SecretsPageSize <= 0 {
		return fmt.Errorf("invalid secrets page size: %d", c.SecretsPageSize)
	}

	switch c.RecordStore {
	case RecordStoreDynamoDB:
		if c.TableName == "" {
			return errors.New("table name is required for the dynamodb record store")
		}
	case RecordStoreMemory:
	default:
		return fmt.Errorf("unsupported record store: %q", c.RecordStore)
	}

	switch c.SecretRegistry {
	case SecretRegistrySecretsManager:
		if c.SecretsPageSize > MaxSecretsManagerPageSize {
			return fmt.Errorf("secrets page size %d exceeds the Secrets Manager limit of %d", c.SecretsPageSize, MaxSecretsManagerPageSize)
		}
	case SecretRegistryVault:
		if c.Vault.Mount == "" {
			return errors.New("vault mount is required for the vault secret registry")
		}
	default:
		return fmt.Errorf("unsupported secret registry: %q", c.SecretRegistry)
	}

	return nil
}
