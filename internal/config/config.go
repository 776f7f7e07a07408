package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Solana  SolanaConfig  `mapstructure:"solana"`
	Log     LogConfig     `mapstructure:"log"`
	Decoder DecoderConfig `mapstructure:"decoder"`
}

// SolanaConfig holds Solana-specific configuration
type SolanaConfig struct {
	RPC     string `mapstructure:"rpc"`
	Network string `mapstructure:"network"`
	Timeout int    `mapstructure:"timeout"` // in seconds
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// DecoderConfig selects which protocols a parser decodes and how it flags
// bot/dev trades.
type DecoderConfig struct {
	// Protocols lists the protocol names to decode: pumpfun, pumpswap, bonk.
	// Empty means all three.
	Protocols []string `mapstructure:"protocols"`

	// BotWallet, if set, flags trades initiated by this address as IsBot.
	BotWallet string `mapstructure:"bot_wallet"`

	// ProgramIDOverrides maps a protocol name to a program id. It is decoded
	// from configuration only: pkg/factory and the decode command do not read
	// it, so every decoder matches its built-in program id.
	ProgramIDOverrides map[string]string `mapstructure:"program_id_overrides"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Solana: SolanaConfig{
			RPC:     "https://api.devnet.solana.com",
			Network: "devnet",
			Timeout: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Decoder: DecoderConfig{
			Protocols: []string{"pumpfun", "pumpswap", "bonk"},
		},
	}
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName(".carbon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Environment variables
	viper.SetEnvPrefix("CARBON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// GetRPCEndpoint returns the RPC endpoint for the configured network
func (c *SolanaConfig) GetRPCEndpoint() string {
	if c.RPC != "" {
		return c.RPC
	}

	switch c.Network {
	case "mainnet", "mainnet-beta":
		return "https://api.mainnet-beta.solana.com"
	case "testnet":
		return "https://api.testnet.solana.com"
	case "localnet", "localhost":
		return "http://localhost:8899"
	default:
		return "https://api.devnet.solana.com"
	}
}

// ResolvedProtocols returns the configured protocol names, defaulting to all three
// if none are set.
func (d *DecoderConfig) ResolvedProtocols() []string {
	if len(d.Protocols) == 0 {
		return []string{"pumpfun", "pumpswap", "bonk"}
	}
	return d.Protocols
}
