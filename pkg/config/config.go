package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
)

// EnvPrefix prefixes every environment override, e.g. TRACKER_WALLET_PRIVATE_KEY
const EnvPrefix = "TRACKER"

// Storage backends
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config represents the tracker configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"server"`
	Database   DatabaseConfig   `yaml:"database" envconfig:"database"`
	Redis      RedisConfig      `yaml:"redis" envconfig:"redis"`
	Storage    StorageConfig    `yaml:"storage" envconfig:"storage"`
	Chain      ChainConfig      `yaml:"chain" envconfig:"chain"`
	Wallet     WalletConfig     `yaml:"wallet" envconfig:"wallet"`
	Relayer    RelayerConfig    `yaml:"relayer" envconfig:"relayer"`
	Poller     PollerConfig     `yaml:"poller" envconfig:"poller"`
	Watcher    WatcherConfig    `yaml:"watcher" envconfig:"watcher"`
	Chains     []bridge.Chain   `yaml:"chains" ignored:"true" validate:"dive"`
	Monitoring MonitoringConfig `yaml:"monitoring" envconfig:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown" envconfig:"shutdown"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" envconfig:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"write_timeout" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"idle_timeout" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"request_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"shutdown_timeout" default:"10s"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"host" default:"localhost"`
	Port     int    `yaml:"port" envconfig:"port" default:"5432"`
	User     string `yaml:"user" envconfig:"user"`
	Password string `yaml:"password" envconfig:"password"`
	Database string `yaml:"database" envconfig:"database" default:"bridge_tracker"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"ssl_mode" default:"disable"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"addr" default:"localhost:6379"`
	Password string `yaml:"password" envconfig:"password"`
	DB       int    `yaml:"db" envconfig:"db"`
	Key      string `yaml:"key" envconfig:"key" default:"bridge_transactions"`
	MaxIdle  int    `yaml:"max_idle" envconfig:"max_idle" default:"5"`
}

// StorageConfig selects where the transaction list is persisted
type StorageConfig struct {
	Backend string `yaml:"backend" envconfig:"backend" default:"file" validate:"oneof=memory file redis postgres"`
	Path    string `yaml:"path" envconfig:"path" default:"data/bridge_transactions.json"`
}

// ChainConfig describes the source chain the wallet submits to
type ChainConfig struct {
	RPCURL         string        `yaml:"rpc_url" envconfig:"rpc_url" validate:"required"`
	ChainID        uint64        `yaml:"chain_id" envconfig:"chain_id" default:"2484" validate:"required"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"request_timeout" default:"10s"`
}

// WalletConfig contains the signing key and contract addresses. Bridge
// initiation is disabled when no private key is configured.
// EncryptedPrivateKey is opened with the base64 master key read from the
// environment variable named by MasterKeyEnv.
type WalletConfig struct {
	PrivateKey          string `yaml:"private_key" envconfig:"private_key"`
	EncryptedPrivateKey string `yaml:"encrypted_private_key" envconfig:"encrypted_private_key"`
	MasterKeyEnv        string `yaml:"master_key_env" envconfig:"master_key_env" default:"TRACKER_MASTER_KEY"`
	GatewayAddress      string `yaml:"gateway_address" envconfig:"gateway_address"`
	TokenAddress        string `yaml:"token_address" envconfig:"token_address"`
	GasLimit            uint64 `yaml:"gas_limit" envconfig:"gas_limit"`
	Decimals            int32  `yaml:"decimals" envconfig:"decimals" default:"18" validate:"min=0,max=36"`
	NativeSymbol        string `yaml:"native_symbol" envconfig:"native_symbol" default:"U2U"`
	TokenSymbol         string `yaml:"token_symbol" envconfig:"token_symbol" default:"IU2U"`
}

// Enabled reports whether a signing key is configured
func (w WalletConfig) Enabled() bool {
	return w.PrivateKey != "" || w.EncryptedPrivateKey != ""
}

// RelayerConfig contains relayer status API settings
type RelayerConfig struct {
	BaseURL        string        `yaml:"base_url" envconfig:"base_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"request_timeout" default:"10s"`
	RateLimit      float64       `yaml:"rate_limit" envconfig:"rate_limit" default:"10"`
	RateBurst      int           `yaml:"rate_burst" envconfig:"rate_burst" default:"5"`
}

// PollerConfig controls relayer polling. Zero MaxAttempts and MaxDuration
// poll until the command executes.
type PollerConfig struct {
	Interval        time.Duration `yaml:"interval" envconfig:"interval" default:"5s"`
	MaxAttempts     int           `yaml:"max_attempts" envconfig:"max_attempts" validate:"min=0"`
	MaxDuration     time.Duration `yaml:"max_duration" envconfig:"max_duration"`
	InitialInterval time.Duration `yaml:"initial_interval" envconfig:"initial_interval" default:"5s"`
	MaxInterval     time.Duration `yaml:"max_interval" envconfig:"max_interval" default:"5s"`
	Multiplier      float64       `yaml:"multiplier" envconfig:"multiplier" default:"1" validate:"gte=1"`
}

// WatcherConfig controls source receipt polling
type WatcherConfig struct {
	Interval time.Duration `yaml:"interval" envconfig:"interval" default:"3s"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"enabled" default:"true"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" envconfig:"level" default:"info"`
	Format     string `yaml:"format" envconfig:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" envconfig:"output_path" default:"stdout"`
}

// ShutdownConfig contains graceful shutdown settings
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" envconfig:"timeout" default:"30s"`
}

// Load reads the YAML file at path, fills unset fields with defaults, applies
// TRACKER_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file read
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnv overlays TRACKER_* variables on cfg. envconfig fills unset
// variables from the default tag and from un-prefixed names (PATH, USER), so
// every field whose prefixed variable is unset is restored afterwards.
func applyEnv(cfg *Config) error {
	fromFile := *cfg
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return err
	}
	keepUnset(EnvPrefix, reflect.ValueOf(cfg).Elem(), reflect.ValueOf(&fromFile).Elem())
	return nil
}

// keepUnset copies src into dst for each field without a set variable. Keys
// follow envconfig's naming: PREFIX_SECTION_FIELD.
func keepUnset(prefix string, dst, src reflect.Value) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("ignored") == "true" {
			continue
		}

		name := field.Tag.Get("envconfig")
		if name == "" {
			name = field.Name
		}
		key := strings.ToUpper(prefix + "_" + name)

		if dst.Field(i).Kind() == reflect.Struct {
			keepUnset(key, dst.Field(i), src.Field(i))
			continue
		}
		if _, set := os.LookupEnv(key); !set {
			dst.Field(i).Set(src.Field(i))
		}
	}
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	switch cfg.Storage.Backend {
	case StorageFile:
		if cfg.Storage.Path == "" {
			return errors.New("storage.path is required for the file backend")
		}
	case StorageRedis:
		if cfg.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis backend")
		}
	case StoragePostgres:
		if cfg.Database.Host == "" {
			return errors.New("database.host is required for the postgres backend")
		}
	}

	if cfg.Wallet.PrivateKey != "" && cfg.Wallet.EncryptedPrivateKey != "" {
		return errors.New("wallet.private_key and wallet.encrypted_private_key are mutually exclusive")
	}
	if cfg.Wallet.Enabled() {
		if cfg.Wallet.GatewayAddress == "" {
			return errors.New("wallet.gateway_address is required when signing is enabled")
		}
		if cfg.Wallet.TokenAddress == "" {
			return errors.New("wallet.token_address is required when signing is enabled")
		}
	}

	if cfg.Poller.MaxInterval < cfg.Poller.InitialInterval {
		return fmt.Errorf("poller.max_interval (%s) is below poller.initial_interval (%s)",
			cfg.Poller.MaxInterval, cfg.Poller.InitialInterval)
	}

	seen := make(map[uint64]struct{}, len(cfg.Chains))
	for _, ch := range cfg.Chains {
		if _, dup := seen[ch.ID]; dup {
			return fmt.Errorf("chains: duplicate chain id %d", ch.ID)
		}
		seen[ch.ID] = struct{}{}
	}
	return nil
}

// ChainRegistry returns the configured chains on top of the built-in list
func (c *Config) ChainRegistry() *bridge.Chains {
	list := make([]bridge.Chain, 0, len(bridge.DefaultChainList)+len(c.Chains))
	list = append(list, bridge.DefaultChainList...)
	list = append(list, c.Chains...)
	return bridge.NewChains(list)
}

// ListenAddr returns host:port for the HTTP server
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Redacted returns a copy safe to log
func (c Config) Redacted() Config {
	if c.Wallet.PrivateKey != "" {
		c.Wallet.PrivateKey = "***"
	}
	if c.Database.Password != "" {
		c.Database.Password = "***"
	}
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	c.Chain.RPCURL = redactURL(c.Chain.RPCURL)
	return c
}

// RPC URLs often embed API keys in the path
func redactURL(u string) string {
	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return u
	}
	host, _, _ := strings.Cut(rest, "/")
	return scheme + "://" + host
}
