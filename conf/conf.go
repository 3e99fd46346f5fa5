// Package conf loads process configuration with github.com/spf13/viper and command-line
// flags with github.com/jessevdk/go-flags, mirroring copernet-copernicus/conf/config.go and
// copernet-copernicus/conf/opts.go. The mining and staking options of spec.md §6 live here.
package conf

import (
	"github.com/spf13/viper"
)

// MiningConfig holds the block-template policy knobs of spec.md §6.
type MiningConfig struct {
	// BlockMaxWeight sets the weight ceiling. Zero means "use the protocol default".
	BlockMaxWeight uint64 `mapstructure:"blockmaxweight"`
	// BlockMaxSize sets the size ceiling. Zero means "use the protocol default"; the size
	// ceiling is not derived from BlockMaxWeight.
	BlockMaxSize uint64 `mapstructure:"blockmaxsize"`
	// BlockPrioritySize is the byte budget reserved for the priority lane; 0 disables it.
	BlockPrioritySize uint64 `mapstructure:"blockprioritysize"`
	// BlockVersion overrides the computed block version; regtest only. -1 means "unset".
	BlockVersion int32 `mapstructure:"blockversion"`
	// PrintPriority logs each admitted tx's priority, fee rate and txid.
	PrintPriority bool `mapstructure:"printpriority"`
	// BlockMinTxFee is the minimum relay fee rate (satoshis per KB) below which selection
	// stops early (spec.md §4.4 step 3).
	BlockMinTxFee int64 `mapstructure:"blockmintxfee"`
}

// StakingConfig holds the staker-loop options of spec.md §4.7.
type StakingConfig struct {
	// Enabled mirrors the original fStaking toggle.
	Enabled bool `mapstructure:"staking"`
	// MinerSleepMillis is the backoff between failed staking attempts.
	MinerSleepMillis int `mapstructure:"minersleep"`
	// ReserveBalance is the amount to keep out of coin-stake input selection. It is loaded and
	// can be overridden by flag, but nothing in this module passes it on or reads it.
	ReserveBalance int64 `mapstructure:"reservebalance"`
}

// Config is the process-wide configuration root.
type Config struct {
	Mining  MiningConfig
	Staking StakingConfig
}

// DefaultConfig returns the protocol defaults, matching the clamps of spec.md §6.
func DefaultConfig() *Config {
	return &Config{
		Mining: MiningConfig{
			BlockMaxWeight:    DefaultBlockMaxWeight,
			BlockMaxSize:      DefaultBlockMaxSize,
			BlockPrioritySize: DefaultBlockPrioritySize,
			BlockVersion:      -1,
			BlockMinTxFee:     DefaultBlockMinTxFee,
		},
		Staking: StakingConfig{
			MinerSleepMillis: DefaultMinerSleepMillis,
		},
	}
}

// Load reads an optional YAML config file from configPath (directory), overlaying viper
// defaults derived from DefaultConfig, and returns the merged Config. A missing config file
// is not an error; the defaults stand.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.SetDefault("mining.blockmaxweight", cfg.Mining.BlockMaxWeight)
	v.SetDefault("mining.blockmaxsize", cfg.Mining.BlockMaxSize)
	v.SetDefault("mining.blockprioritysize", cfg.Mining.BlockPrioritySize)
	v.SetDefault("mining.blockversion", cfg.Mining.BlockVersion)
	v.SetDefault("mining.printpriority", cfg.Mining.PrintPriority)
	v.SetDefault("mining.blockmintxfee", cfg.Mining.BlockMinTxFee)
	v.SetDefault("staking.staking", cfg.Staking.Enabled)
	v.SetDefault("staking.minersleep", cfg.Staking.MinerSleepMillis)
	v.SetDefault("staking.reservebalance", cfg.Staking.ReserveBalance)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg.Mining.BlockMaxWeight = v.GetUint64("mining.blockmaxweight")
	cfg.Mining.BlockMaxSize = v.GetUint64("mining.blockmaxsize")
	cfg.Mining.BlockPrioritySize = v.GetUint64("mining.blockprioritysize")
	cfg.Mining.BlockVersion = int32(v.GetInt("mining.blockversion"))
	cfg.Mining.PrintPriority = v.GetBool("mining.printpriority")
	cfg.Mining.BlockMinTxFee = v.GetInt64("mining.blockmintxfee")
	cfg.Staking.Enabled = v.GetBool("staking.staking")
	cfg.Staking.MinerSleepMillis = v.GetInt("staking.minersleep")
	cfg.Staking.ReserveBalance = v.GetInt64("staking.reservebalance")

	return cfg, nil
}
