// Package config loads runtime configuration for the certmint CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the certificate data file
//	-k string   path of the wallet keypair file
//	-r string   Solana RPC endpoint URL
//	-t int      mint timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the mint timeout, so the value can
// be either a string like "90s" or integer nanoseconds:
//
//	{
//	  "data_file": "certificates.json",
//	  "wallet_key_file": "wallet.json",
//	  "solana_rpc_url": "https://api.devnet.solana.com",
//	  "mint_timeout": "90s",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_bucket": "mint-assets"
//	}
//
// Primary API
//
//   - type Config                     — holds paths, endpoints and the mint timeout
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
