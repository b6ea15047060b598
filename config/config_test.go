package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:3400", cfg.ListenAddr())
	assert.Equal(t, "halow-data", cfg.TableName)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "development", cfg.Environment)
	assert.EqualValues(t, 100, cfg.SecretsPageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "invalid port",
		},
		{
			name:    "missing region",
			mutate:  func(c *Config) { c.Region = "" },
			wantErr: "region is required",
		},
		{
			name:    "missing table for dynamodb",
			mutate:  func(c *Config) { c.TableName = "" },
			wantErr: "table name is required",
		},
		{
			name: "memory store needs no table",
			mutate: func(c *Config) {
				c.RecordStore = RecordStoreMemory
				c.TableName = ""
			},
		},
		{
			name:    "unknown record store",
			mutate:  func(c *Config) { c.RecordStore = "redis" },
			wantErr: "unsupported record store",
		},
		{
			name:    "unknown registry",
			mutate:  func(c *Config) { c.SecretRegistry = "gcp" },
			wantErr: "unsupported secret registry",
		},
		{
			name: "vault without mount",
			mutate: func(c *Config) {
				c.SecretRegistry = SecretRegistryVault
				c.Vault.Mount = ""
			},
			wantErr: "vault mount is required",
		},
		{
			name:    "bad page size",
			mutate:  func(c *Config) { c.SecretsPageSize = 0 },
			wantErr: "invalid secrets page size",
		},
		{
			name:    "page size above secrets manager limit",
			mutate:  func(c *Config) { c.SecretsPageSize = 500 },
			wantErr: "exceeds the Secrets Manager limit",
		},
		{
			name:   "page size at secrets manager limit",
			mutate: func(c *Config) { c.SecretsPageSize = MaxSecretsManagerPageSize },
		},
		{
			name: "vault allows larger page size",
			mutate: func(c *Config) {
				c.SecretRegistry = SecretRegistryVault
				c.SecretsPageSize = 500
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
