package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/halow-dashboard/api"
	"github.com/ruteri/halow-dashboard/common"
	"github.com/ruteri/halow-dashboard/config"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// BuildConfig folds the dashboard flags into a validated config.Config.
func BuildConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg := &config.Config{
		ListenHost:       cCtx.String(ListenHostFlag.Name),
		Port:             cCtx.Int(PortFlag.Name),
		Region:           cCtx.String(RegionFlag.Name),
		TableName:        cCtx.String(TableNameFlag.Name),
		DynamoDBEndpoint: cCtx.String(DynamoDBEndpointFlag.Name),
		RegistryEndpoint: cCtx.String(RegistryEndpointFlag.Name),
		Environment:      cCtx.String(EnvironmentFlag.Name),
		ServiceName:      cCtx.String(ServiceNameFlag.Name),
		RecordStore:      cCtx.String(RecordStoreFlag.Name),
		SecretRegistry:   cCtx.String(SecretRegistryFlag.Name),
		SecretsPageSize:  cCtx.Int64(SecretsPageSizeFlag.Name),
		Vault: config.VaultConfig{
			Addr:  cCtx.String(VaultAddrFlag.Name),
			Token: cCtx.String(VaultTokenFlag.Name),
			Mount: cCtx.String(VaultMountFlag.Name),
			Path:  cCtx.String(VaultPathFlag.Name),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *api.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	shutdownDuration := time.Duration(cCtx.Int64(ShutdownSecondsFlag.Name)) * time.Second

	return &api.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		GracefulShutdownDuration: shutdownDuration,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

var PortFlag = &cli.IntFlag{
	Name:    "port",
	Value:   config.DefaultPort,
	EnvVars: []string{"PORT"},
	Usage:   "port to listen on for the dashboard",
}
var ListenHostFlag = &cli.StringFlag{
	Name:    "listen-host",
	Value:   config.DefaultListenHost,
	EnvVars: []string{"LISTEN_HOST"},
	Usage:   "host to listen on for the dashboard",
}

var RegionFlag = &cli.StringFlag{
	Name:    "region",
	Value:   config.DefaultRegion,
	EnvVars: []string{"AWS_REGION"},
	Usage:   "AWS region of the record table and the secrets registry",
}
var TableNameFlag = &cli.StringFlag{
	Name:    "table-name",
	Value:   config.DefaultTableName,
	EnvVars: []string{"DYNAMODB_TABLE_NAME"},
	Usage:   "DynamoDB table holding dashboard records",
}
var DynamoDBEndpointFlag = &cli.StringFlag{
	Name:    "dynamodb-endpoint",
	EnvVars: []string{"DYNAMODB_ENDPOINT_URL"},
	Usage:   "override the DynamoDB endpoint, e.g. for DynamoDB Local",
}
var RegistryEndpointFlag = &cli.StringFlag{
	Name:    "registry-endpoint",
	EnvVars: []string{"AWS_ENDPOINT_URL"},
	Usage:   "override the Secrets Manager endpoint",
}

var EnvironmentFlag = &cli.StringFlag{
	Name:    "environment",
	Value:   config.DefaultEnvironment,
	EnvVars: []string{"NODE_ENV", "ENVIRONMENT"},
	Usage:   "deployment label shown on every page",
}
var ServiceNameFlag = &cli.StringFlag{
	Name:    "service-name",
	Value:   config.DefaultServiceName,
	EnvVars: []string{"SERVICE_NAME"},
	Usage:   "service name reported by the probe endpoints",
}

var RecordStoreFlag = &cli.StringFlag{
	Name:    "record-store",
	Value:   config.RecordStoreDynamoDB,
	EnvVars: []string{"RECORD_STORE"},
	Usage:   "record store backend: 'dynamodb' or 'memory'",
}
var SecretRegistryFlag = &cli.StringFlag{
	Name:    "secret-registry",
	Value:   config.SecretRegistrySecretsManager,
	EnvVars: []string{"SECRET_REGISTRY"},
	Usage:   "secret registry backend: 'secretsmanager' or 'vault'",
}
var SecretsPageSizeFlag = &cli.Int64Flag{
	Name:    "secrets-page-size",
	Value:   config.DefaultSecretsPageSize,
	EnvVars: []string{"SECRETS_PAGE_SIZE"},
	Usage:   "maximum number of secrets enumerated per listing (at most 100 for Secrets Manager)",
}

var VaultAddrFlag = &cli.StringFlag{
	Name:    "vault-addr",
	EnvVars: []string{"VAULT_ADDR"},
	Usage:   "Vault address (vault secret registry)",
}
var VaultTokenFlag = &cli.StringFlag{
	Name:    "vault-token",
	EnvVars: []string{"VAULT_TOKEN"},
	Usage:   "Vault token (vault secret registry)",
}
var VaultMountFlag = &cli.StringFlag{
	Name:    "vault-mount",
	Value:   config.DefaultVaultMount,
	EnvVars: []string{"VAULT_MOUNT"},
	Usage:   "KV v2 mount path (vault secret registry)",
}
var VaultPathFlag = &cli.StringFlag{
	Name:    "vault-path",
	EnvVars: []string{"VAULT_PATH"},
	Usage:   "path under the mount to list (vault secret registry)",
}

var DashboardFlags = []cli.Flag{
	PortFlag,
	ListenHostFlag,
	RegionFlag,
	TableNameFlag,
	DynamoDBEndpointFlag,
	RegistryEndpointFlag,
	EnvironmentFlag,
	ServiceNameFlag,
	RecordStoreFlag,
	SecretRegistryFlag,
	SecretsPageSizeFlag,
	VaultAddrFlag,
	VaultTokenFlag,
	VaultMountFlag,
	VaultPathFlag,
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var ShutdownSecondsFlag = &cli.Int64Flag{
	Name:  "shutdown-seconds",
	Value: 30,
	Usage: "seconds to wait for in-flight requests on shutdown",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:    "metrics-addr",
	Value:   "127.0.0.1:8090",
	EnvVars: []string{"METRICS_ADDR"},
	Usage:   "address to listen on for Prometheus metrics",
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
	PprofFlag,
	ShutdownSecondsFlag,
	MetricsAddrFlag,
}
