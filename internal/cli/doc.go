// Package cli provides the interactive certmint command-line client.
//
// It wires configuration, the persisted certificate collection, the card
// renderer, the wallet session, and the Solana minting backend into an
// interactive REPL.
//
// Key features:
//   - Add / Edit / Delete certificates
//   - List / Show certificates (Show also selects the record)
//   - Export a certificate card as a PNG snapshot
//   - Connect / Disconnect a local wallet keypair
//   - Mint the selected certificate as an NFT
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
