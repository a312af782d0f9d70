package config

import "time"

// Config holds runtime settings for the certmint CLI.
//
// Units: MintTimeout is a time.Duration (e.g. 90*time.Second); a zero value
// disables the timeout.
type Config struct {
	// DataFile is the JSON blob holding the certificate collection.
	DataFile string
	// SnapshotDir receives exported PNG cards.
	SnapshotDir string

	// FontPath points at the TTF used for card rendering.
	FontPath      string
	TitleFontSize float64
	BodyFontSize  float64

	// WalletKeyFile is a solana-keygen keypair file, optionally sealed.
	WalletKeyFile string

	SolanaRPCURL    string
	ExplorerBaseURL string
	MintTimeout     time.Duration

	// Object storage for mint assets (MinIO-compatible).
	S3BaseEndpoint string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataFile = "certificates.json"
	c.SnapshotDir = "snapshots"
	c.FontPath = ""
	c.TitleFontSize = 64
	c.BodyFontSize = 28
	c.WalletKeyFile = "wallet.json"
	c.SolanaRPCURL = "https://api.devnet.solana.com"
	c.ExplorerBaseURL = "https://explorer.solana.com"
	c.MintTimeout = 90 * time.Second
	c.S3Region = "us-east-1"
	c.S3Bucket = "mint-assets"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
