// Package minting submits certificates to the blockchain minting backend.
// The snapshot image and a metadata document are uploaded to object storage
// first; the resulting URI is then baked into an NFT mint transaction.
package minting

import (
	"context"
	"time"
)

// Metadata is the certificate information that accompanies a submission.
type Metadata struct {
	CertificateID string
	Title         string
	Description   string
	// Owner is the base58 wallet address receiving the minted token.
	Owner     string
	IssuedAt  time.Time
	UpdatedAt time.Time
	Edited    bool
}

// Receipt is returned for a successful submission and carries the references
// shown to the user.
type Receipt struct {
	MintAddress string
	Signature   string
	ExplorerURL string
	ImageURL    string
	MetadataURL string
}

// Minter submits one certificate snapshot to the minting backend.
// Every call is a fresh submission: no idempotency key is derived from the
// certificate id, so a transport-level retry can mint a duplicate. Dedup of
// user-level double clicks is the coordinator's job, not the minter's.
type Minter interface {
	Submit(ctx context.Context, meta Metadata, image []byte) (*Receipt, error)
}
