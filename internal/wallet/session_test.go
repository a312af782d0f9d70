package wallet

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/certmint/internal/cryptox"
	"github.com/dmitrijs2005/certmint/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// keypairJSON serializes an account's private key the way solana-keygen
// does: a JSON array of 64 integers.
func keypairJSON(t *testing.T, account types.Account) []byte {
	t.Helper()
	ints := make([]int, len(account.PrivateKey))
	for i, b := range account.PrivateKey {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	require.NoError(t, err)
	return data
}

func writeKeypairFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestConnect_PlainKeypairFile(t *testing.T) {
	account := types.NewAccount()
	path := writeKeypairFile(t, keypairJSON(t, account))

	s := NewSession(path, testLogger())
	address, err := s.Connect(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, account.PublicKey.ToBase58(), address)

	got, ok := s.CurrentAddress()
	require.True(t, ok)
	assert.Equal(t, address, got)

	signer, ok := s.Account()
	require.True(t, ok)
	assert.Equal(t, account.PublicKey, signer.PublicKey)
}

func TestConnect_SealedKeypairFile(t *testing.T) {
	account := types.NewAccount()
	passphrase := []byte("hunter2")

	sealed, err := cryptox.SealWithPassphrase(keypairJSON(t, account), passphrase)
	require.NoError(t, err)
	path := writeKeypairFile(t, sealed)

	s := NewSession(path, testLogger())

	t.Run("passphrase required", func(t *testing.T) {
		_, err := s.Connect(context.Background(), nil)
		require.ErrorIs(t, err, ErrPassphraseRequired)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := s.Connect(context.Background(), []byte("wrong"))
		require.Error(t, err)
		_, ok := s.CurrentAddress()
		assert.False(t, ok)
	})

	t.Run("correct passphrase", func(t *testing.T) {
		address, err := s.Connect(context.Background(), passphrase)
		require.NoError(t, err)
		assert.Equal(t, account.PublicKey.ToBase58(), address)
	})
}

func TestConnect_MissingFile(t *testing.T) {
	s := NewSession(filepath.Join(t.TempDir(), "absent.json"), testLogger())

	_, err := s.Connect(context.Background(), nil)
	require.Error(t, err)

	_, ok := s.CurrentAddress()
	assert.False(t, ok)
}

func TestDisconnect(t *testing.T) {
	account := types.NewAccount()
	path := writeKeypairFile(t, keypairJSON(t, account))

	s := NewSession(path, testLogger())
	_, err := s.Connect(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, s.Disconnect())

	_, ok := s.CurrentAddress()
	assert.False(t, ok)
	_, ok = s.Account()
	assert.False(t, ok)
}

func TestDisconnect_NotConnected(t *testing.T) {
	s := NewSession("unused.json", testLogger())

	require.ErrorIs(t, s.Disconnect(), ErrNotConnected)
}

func TestDecodeKeypairJSON(t *testing.T) {
	account := types.NewAccount()

	t.Run("int array form", func(t *testing.T) {
		got, err := decodeKeypairJSON(keypairJSON(t, account))
		require.NoError(t, err)
		assert.Equal(t, []byte(account.PrivateKey), got)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := decodeKeypairJSON([]byte(`[1,2,3]`))
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := decodeKeypairJSON([]byte(`garbage`))
		require.Error(t, err)
	})
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "9xQeWv…VFin", ShortAddress("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"))
	assert.Equal(t, "short", ShortAddress("short"))
}
