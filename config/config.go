package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Policy   PolicyConfig   `mapstructure:"policy"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// ChainConfig configures the EVM gateway and the agent signing key.
type ChainConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ChainID             int64         `mapstructure:"chain_id"`
	SignerKey           string        `mapstructure:"signer_key"` // hex secp256k1 key, 0x prefix optional
	SwapRouter          string        `mapstructure:"swap_router"`
	ConfirmationTimeout time.Duration `mapstructure:"confirmation_timeout"`
	ExecutionTimeout    time.Duration `mapstructure:"execution_timeout"`
}

type PaymentConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	IntentTTL  time.Duration `mapstructure:"intent_ttl"`
}

type PolicyConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LedgerConfig selects the Ledger Store backend: "postgres" or "memory".
type LedgerConfig struct {
	Driver string `mapstructure:"driver"`
}

type AdminConfig struct {
	Addresses []string `mapstructure:"addresses"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: AGP_ (Agent Gateway Payments).
// Nested keys use underscore: AGP_DATABASE_HOST, AGP_CHAIN_RPC_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "agent_payments")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "agent-payment-engine")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("chain.rpc_url", "http://localhost:8545")
	v.SetDefault("chain.chain_id", 1)
	v.SetDefault("chain.signer_key", "")
	v.SetDefault("chain.swap_router", "")
	v.SetDefault("chain.confirmation_timeout", "2m")
	v.SetDefault("chain.execution_timeout", "45s")
	v.SetDefault("payment.session_ttl", "30m")
	v.SetDefault("payment.intent_ttl", "1h")
	v.SetDefault("policy.sweep_interval", "1h")
	v.SetDefault("ledger.driver", "postgres")
	v.SetDefault("admin.addresses", []string{})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: AGP_DATABASE_HOST -> database.host
	v.SetEnvPrefix("AGP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Ledger.Driver != "postgres" && cfg.Ledger.Driver != "memory" {
		return nil, fmt.Errorf("unsupported ledger driver %q", cfg.Ledger.Driver)
	}

	return &cfg, nil
}
