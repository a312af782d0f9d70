package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/certmint/internal/flagx"
	"github.com/dmitrijs2005/certmint/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the mint timeout either as a string
// like "90s" or as integer nanoseconds. Pointer fields distinguish "absent"
// from "explicitly zero" so a sparse file only overrides what it names.
type JsonConfig struct {
	DataFile        *string         `json:"data_file"`
	SnapshotDir     *string         `json:"snapshot_dir"`
	FontPath        *string         `json:"font_path"`
	TitleFontSize   *float64        `json:"title_font_size"`
	BodyFontSize    *float64        `json:"body_font_size"`
	WalletKeyFile   *string         `json:"wallet_key_file"`
	SolanaRPCURL    *string         `json:"solana_rpc_url"`
	ExplorerBaseURL *string         `json:"explorer_base_url"`
	MintTimeout     *timex.Duration `json:"mint_timeout"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint"`
	S3Region        *string         `json:"s3_region"`
	S3Bucket        *string         `json:"s3_bucket"`
	S3AccessKey     *string         `json:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// path is given, nothing is loaded. Read or unmarshal errors panic (the
// caller decides whether to recover). Intended usage is:
// defaults -> parseJson -> parseFlags, later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataFile != nil {
		cfg.DataFile = *jc.DataFile
	}
	if jc.SnapshotDir != nil {
		cfg.SnapshotDir = *jc.SnapshotDir
	}
	if jc.FontPath != nil {
		cfg.FontPath = *jc.FontPath
	}
	if jc.TitleFontSize != nil {
		cfg.TitleFontSize = *jc.TitleFontSize
	}
	if jc.BodyFontSize != nil {
		cfg.BodyFontSize = *jc.BodyFontSize
	}
	if jc.WalletKeyFile != nil {
		cfg.WalletKeyFile = *jc.WalletKeyFile
	}
	if jc.SolanaRPCURL != nil {
		cfg.SolanaRPCURL = *jc.SolanaRPCURL
	}
	if jc.ExplorerBaseURL != nil {
		cfg.ExplorerBaseURL = *jc.ExplorerBaseURL
	}
	if jc.MintTimeout != nil {
		cfg.MintTimeout = jc.MintTimeout.Duration
	}
	if jc.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *jc.S3BaseEndpoint
	}
	if jc.S3Region != nil {
		cfg.S3Region = *jc.S3Region
	}
	if jc.S3Bucket != nil {
		cfg.S3Bucket = *jc.S3Bucket
	}
	if jc.S3AccessKey != nil {
		cfg.S3AccessKey = *jc.S3AccessKey
	}
	if jc.S3SecretKey != nil {
		cfg.S3SecretKey = *jc.S3SecretKey
	}
}
