package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/certmint/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the certificate data file (default from Config)
//	-k string   path of the wallet keypair file (default from Config)
//	-r string   Solana RPC endpoint URL (default from Config)
//	-t int      mint timeout in seconds (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataFile, "d", cfg.DataFile, "path of the certificate data file")
	fs.StringVar(&cfg.WalletKeyFile, "k", cfg.WalletKeyFile, "path of the wallet keypair file")
	fs.StringVar(&cfg.SolanaRPCURL, "r", cfg.SolanaRPCURL, "solana rpc endpoint url")
	mintTimeout := fs.Int("t", int(cfg.MintTimeout.Seconds()), "mint timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.MintTimeout = time.Duration(*mintTimeout) * time.Second
}
