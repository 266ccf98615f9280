package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// ContractsConfig holds the deployed address of each lifecycle contract
type ContractsConfig struct {
	RawBatch     string `mapstructure:"raw_batch"`
	ProductBatch string `mapstructure:"product_batch"`
	Recycling    string `mapstructure:"recycling"`
}

// LedgerConfig holds ledger node and signing configuration
type LedgerConfig struct {
	RPCURL              string          `mapstructure:"rpc_url"`
	ChainID             int64           `mapstructure:"chain_id"`
	PrivateKey          string          `mapstructure:"private_key"`
	Contracts           ContractsConfig `mapstructure:"contracts"`
	ConfirmationTimeout time.Duration   `mapstructure:"confirmation_timeout"`
	PollInterval        time.Duration   `mapstructure:"poll_interval"`
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string `mapstructure:"jwt_public_key"`
	Issuer       string `mapstructure:"issuer"`
	Audience     string `mapstructure:"audience"`
}

// IdentityConfig holds account address allocation configuration
type IdentityConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
}

// LifecycleConfig holds orchestrator tuning
type LifecycleConfig struct {
	ChunkSize       int `mapstructure:"chunk_size"`
	ListConcurrency int `mapstructure:"list_concurrency"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize int `mapstructure:"pool_size"`
}

// OrphanSweeperConfig holds configuration for the ledger orphan sweeper
type OrphanSweeperConfig struct {
	BatchSize   int           `mapstructure:"batch_size"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	Interval    time.Duration `mapstructure:"interval"`
	Worker      WorkerConfig  `mapstructure:"worker"`
}

// DriftSweeperConfig holds configuration for the index drift sweeper
type DriftSweeperConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BatchSize int           `mapstructure:"batch_size"`
	Interval  time.Duration `mapstructure:"interval"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Ledger     LedgerConfig    `mapstructure:"ledger"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Identity   IdentityConfig  `mapstructure:"identity"`
	Lifecycle  LifecycleConfig `mapstructure:"lifecycle"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig     `mapstructure:",squash"`
	MetricsAddress string              `mapstructure:"metrics_address"`
	Database       DatabaseConfig      `mapstructure:"database"`
	Ledger         LedgerConfig        `mapstructure:"ledger"`
	OrphanSweeper  OrphanSweeperConfig `mapstructure:"orphan_sweeper"`
	DriftSweeper   DriftSweeperConfig  `mapstructure:"drift_sweeper"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 180) // covers the ledger confirmation wait
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setLedgerDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LIFECYCLE")
	v.SetDefault("nats.connection_name", "lifecycle-api")
	v.SetDefault("identity.max_attempts", 10)
	v.SetDefault("lifecycle.chunk_size", 50)
	v.SetDefault("lifecycle.list_concurrency", 4)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("metrics_address", ":9090")
	setDatabaseDefaults(v)
	setLedgerDefaults(v)
	v.SetDefault("orphan_sweeper.batch_size", 50)
	v.SetDefault("orphan_sweeper.max_attempts", 10)
	v.SetDefault("orphan_sweeper.interval", "1m")
	v.SetDefault("orphan_sweeper.worker.pool_size", 4)
	v.SetDefault("drift_sweeper.enabled", true)
	v.SetDefault("drift_sweeper.batch_size", 100)
	v.SetDefault("drift_sweeper.interval", "15m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config SweeperConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setLedgerDefaults(v *viper.Viper) {
	v.SetDefault("ledger.rpc_url", "http://localhost:8545")
	v.SetDefault("ledger.chain_id", 1337)
	v.SetDefault("ledger.confirmation_timeout", "2m")
	v.SetDefault("ledger.poll_interval", "1s")
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_LIFECYCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"metrics_address",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Ledger
		"ledger.rpc_url",
		"ledger.chain_id",
		"ledger.private_key",
		"ledger.contracts.raw_batch",
		"ledger.contracts.product_batch",
		"ledger.contracts.recycling",
		"ledger.confirmation_timeout",
		"ledger.poll_interval",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.issuer",
		"auth.audience",
		// Identity
		"identity.max_attempts",
		// Lifecycle
		"lifecycle.chunk_size",
		"lifecycle.list_concurrency",
		// Sweepers
		"orphan_sweeper.batch_size",
		"orphan_sweeper.max_attempts",
		"orphan_sweeper.interval",
		"orphan_sweeper.worker.pool_size",
		"drift_sweeper.enabled",
		"drift_sweeper.batch_size",
		"drift_sweeper.interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ContractAddresses maps each lifecycle contract name to its configured address
func (c *LedgerConfig) ContractAddresses() (map[string]common.Address, error) {
	raw := map[string]string{
		schema.ContractRawBatch:     c.Contracts.RawBatch,
		schema.ContractProductBatch: c.Contracts.ProductBatch,
		schema.ContractRecycling:    c.Contracts.Recycling,
	}

	addresses := make(map[string]common.Address, len(raw))
	for name, address := range raw {
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("invalid address %q for contract %s", address, name)
		}
		addresses[name] = common.HexToAddress(address)
	}
	return addresses, nil
}
