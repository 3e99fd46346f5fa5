package conf

import (
	"fmt"

	flags "github.com/jessevdk/go-flags"
)

// Opts are the command-line flags relevant to block assembly and staking, mirroring
// copernet-copernicus/conf/opts.go's use of github.com/jessevdk/go-flags.
type Opts struct {
	DataDir string `long:"datadir" description:"program data directory"`

	BlockMaxWeight    uint64 `long:"blockmaxweight" description:"set maximum block weight"`
	BlockMaxSize      uint64 `long:"blockmaxsize" description:"set maximum block size"`
	BlockPrioritySize uint64 `long:"blockprioritysize" description:"set block size reserved for high-priority transactions"`
	BlockVersion      int32  `long:"blockversion" default:"-1" description:"override block version for regtest"`
	PrintPriority     bool   `long:"printpriority" description:"log transaction priority and fee rate when mining blocks"`

	Staking        bool  `long:"staking" description:"enable proof-of-stake block generation"`
	MinerSleep     int   `long:"minersleep" description:"milliseconds to sleep between staking attempts"`
	ReserveBalance int64 `long:"reservebalance" description:"amount to keep out of stake-input selection"`
}

// ParseArgs parses args (typically os.Args[1:]) into Opts.
func ParseArgs(args []string) (*Opts, error) {
	opts := new(Opts)
	_, err := flags.ParseArgs(opts, args)
	if err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			return opts, nil
		}
		return nil, err
	}
	return opts, nil
}

// ApplyTo overlays any flags the caller explicitly set onto cfg.
func (o *Opts) ApplyTo(cfg *Config) {
	if o.BlockMaxWeight != 0 {
		cfg.Mining.BlockMaxWeight = o.BlockMaxWeight
	}
	if o.BlockMaxSize != 0 {
		cfg.Mining.BlockMaxSize = o.BlockMaxSize
	}
	if o.BlockPrioritySize != 0 {
		cfg.Mining.BlockPrioritySize = o.BlockPrioritySize
	}
	if o.BlockVersion != -1 {
		cfg.Mining.BlockVersion = o.BlockVersion
	}
	if o.PrintPriority {
		cfg.Mining.PrintPriority = true
	}
	if o.Staking {
		cfg.Staking.Enabled = true
	}
	if o.MinerSleep != 0 {
		cfg.Staking.MinerSleepMillis = o.MinerSleep
	}
	if o.ReserveBalance != 0 {
		cfg.Staking.ReserveBalance = o.ReserveBalance
	}
}

func (o *Opts) String() string {
	return fmt.Sprintf("datadir:%s staking:%v", o.DataDir, o.Staking)
}
