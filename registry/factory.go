package registry

import (
	"fmt"
	"log/slog"

	"github.com/ruteri/halow-dashboard/awsclient"
	"github.com/ruteri/halow-dashboard/config"
	"github.com/ruteri/halow-dashboard/interfaces"
)

// NewSecretRegistry creates the secret registry selected by cfg.SecretRegistry.
//
// Supported registries:
//   - secretsmanager - AWS Secrets Manager in cfg.Region, optionally at cfg.RegistryEndpoint
//   - vault - HashiCorp Vault KV v2 at cfg.Vault
func NewSecretRegistry(cfg *config.Config, log *slog.Logger) (interfaces.SecretRegistry, error) {
	var backend Backend

	switch cfg.SecretRegistry {
	case config.SecretRegistrySecretsManager:
		log.Debug("Creating Secrets Manager registry",
			slog.String("region", cfg.Region),
			slog.String("endpoint", cfg.RegistryEndpoint))

		sess, err := awsclient.NewSession(cfg.Region, cfg.RegistryEndpoint)
		if err != nil {
			return nil, err
		}
		backend = NewSecretsManagerBackend(sess, cfg.SecretsPageSize, log)
	case config.SecretRegistryVault:
		vault, err := NewVaultBackend(cfg.Vault.Addr, cfg.Vault.Token, cfg.Vault.Mount, cfg.Vault.Path, cfg.SecretsPageSize, log)
		if err != nil {
			return nil, err
		}
		log.Debug("Creating Vault registry", slog.String("location", vault.LocationURI()))
		backend = vault
	default:
		return nil, fmt.Errorf("unsupported secret registry: %s", cfg.SecretRegistry)
	}

	return New(backend, log), nil
}
