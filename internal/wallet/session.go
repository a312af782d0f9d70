// Package wallet manages the local Solana wallet session: connecting by
// loading a keypair file, exposing the active address, and disconnecting.
//
// The keypair file is the solana-keygen format, a JSON array of 64 bytes.
// It may additionally be sealed with a passphrase (see internal/cryptox), in
// which case Connect requires the passphrase to open it.
package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/blocto/solana-go-sdk/types"

	"github.com/dmitrijs2005/certmint/internal/cryptox"
	"github.com/dmitrijs2005/certmint/internal/logging"
)

var (
	ErrPassphraseRequired = errors.New("keypair file is sealed, passphrase required")
	ErrNotConnected       = errors.New("wallet not connected")
)

// Session holds the connection state. The zero address is never exposed:
// CurrentAddress reports ok=false until Connect succeeds.
type Session struct {
	mu      sync.Mutex
	keyPath string
	account *types.Account
	log     logging.Logger
}

func NewSession(keyPath string, log logging.Logger) *Session {
	return &Session{keyPath: keyPath, log: log}
}

// Connect loads the configured keypair file and activates the session.
// For a sealed file the passphrase must be supplied; for a plain file it is
// ignored. The base58 address of the loaded account is returned.
func (s *Session) Connect(ctx context.Context, passphrase []byte) (string, error) {
	data, err := os.ReadFile(s.keyPath)
	if err != nil {
		return "", fmt.Errorf("reading keypair file: %w", err)
	}

	if IsSealed(data) {
		if len(passphrase) == 0 {
			return "", ErrPassphraseRequired
		}
		data, err = cryptox.OpenWithPassphrase(data, passphrase)
		if err != nil {
			return "", fmt.Errorf("unsealing keypair file: %w", err)
		}
	}

	keyBytes, err := decodeKeypairJSON(data)
	if err != nil {
		return "", err
	}

	account, err := types.AccountFromBytes(keyBytes)
	if err != nil {
		return "", fmt.Errorf("restoring account: %w", err)
	}

	s.mu.Lock()
	s.account = &account
	s.mu.Unlock()

	address := account.PublicKey.ToBase58()
	s.log.Info(ctx, "wallet connected", "address", ShortAddress(address))
	return address, nil
}

// Disconnect drops the active account. Disconnecting a session that is not
// connected returns ErrNotConnected.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return ErrNotConnected
	}
	s.account = nil
	return nil
}

// CurrentAddress returns the base58 address of the connected account.
func (s *Session) CurrentAddress() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return "", false
	}
	return s.account.PublicKey.ToBase58(), true
}

// Account returns the connected signing account.
func (s *Session) Account() (types.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return types.Account{}, false
	}
	return *s.account, true
}

// IsSealed reports whether the file content looks like a sealed blob rather
// than a plain JSON keypair.
func IsSealed(data []byte) bool {
	return !json.Valid(data)
}

// decodeKeypairJSON restores the 64-byte key array from a solana-keygen
// keypair file. The canonical form is a JSON byte array; an [int,...] form
// is accepted for compatibility.
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var keyBytes []byte
	if err := json.Unmarshal(data, &keyBytes); err == nil {
		if len(keyBytes) == ed25519.PrivateKeySize {
			return keyBytes, nil
		}
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("unmarshal keypair json: %w", err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unexpected secret key length: got %d, want %d",
			len(ints), ed25519.PrivateKeySize)
	}

	keyBytes = make([]byte, len(ints))
	for i, v := range ints {
		keyBytes[i] = byte(v)
	}
	return keyBytes, nil
}

// ShortAddress shortens a base58 address for display: "9xQeWv…VFin".
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}
