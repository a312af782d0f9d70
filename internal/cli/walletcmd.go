package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/certmint/internal/cryptox"
	"github.com/dmitrijs2005/certmint/internal/notify"
	"github.com/dmitrijs2005/certmint/internal/wallet"
)

// Connect loads the configured keypair file and activates the wallet session.
// A sealed keypair file triggers a passphrase prompt; the passphrase is wiped
// after use.
func (a *App) Connect(ctx context.Context) error {
	address, err := a.wallet.Connect(ctx, nil)

	if errors.Is(err, wallet.ErrPassphraseRequired) {
		pw, perr := GetPassword(a.out)
		if perr != nil {
			return perr
		}
		address, err = a.wallet.Connect(ctx, pw)
		cryptox.Wipe(pw)
	}

	if err != nil {
		a.notifier.Notify("Wallet connection failed: "+err.Error(), notify.SeverityError)
		return err
	}

	a.notifier.Notify("Wallet connected: "+wallet.ShortAddress(address), notify.SeveritySuccess)
	return nil
}

// Disconnect drops the wallet session.
func (a *App) Disconnect(ctx context.Context) error {
	if err := a.wallet.Disconnect(); err != nil {
		a.notifier.Notify("Wallet is not connected", notify.SeverityWarning)
		return err
	}
	a.notifier.Notify("Wallet disconnected", notify.SeveritySuccess)
	return nil
}
