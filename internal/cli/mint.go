package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/certmint/internal/common"
	"github.com/dmitrijs2005/certmint/internal/notify"
	"github.com/dmitrijs2005/certmint/internal/services"
)

// Mint submits a certificate to the minting backend and reports the outcome.
// The call blocks until the mint finishes or the configured timeout expires.
func (a *App) Mint(ctx context.Context) error {
	id, err := a.resolveID("Enter certificate id to mint")
	if err != nil {
		return err
	}

	if a.minter.IsProcessing(id) {
		a.notifier.Notify("A mint for this certificate is already in progress", notify.SeverityWarning)
		return nil
	}

	receipt, err := a.minter.Mint(ctx, id)
	if err != nil {
		a.notifier.Notify(mintFailureMessage(err), mintFailureSeverity(err))
		return err
	}

	a.notifier.Notify("NFT minted: "+receipt.ExplorerURL, notify.SeveritySuccess)
	return nil
}

func mintFailureMessage(err error) string {
	var snapErr *services.SnapshotError

	switch {
	case errors.Is(err, common.ErrNotFound):
		return "Certificate not found"
	case errors.Is(err, common.ErrNoWallet):
		return "Connect a wallet before minting"
	case errors.Is(err, common.ErrMintInProgress):
		return "A mint for this certificate is already in progress"
	case errors.As(err, &snapErr):
		return "Snapshot failed: " + snapErr.Err.Error()
	default:
		return "Mint failed: " + err.Error()
	}
}

func mintFailureSeverity(err error) notify.Severity {
	if errors.Is(err, common.ErrMintInProgress) {
		return notify.SeverityWarning
	}
	return notify.SeverityError
}
