package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/certmint/internal/filex"
	"github.com/dmitrijs2005/certmint/internal/notify"
)

// Export renders the certificate card and saves it as a PNG file under the
// configured snapshot directory, named after the certificate id.
func (a *App) Export(ctx context.Context) error {
	id, err := a.resolveID("Enter certificate id to export")
	if err != nil {
		return err
	}

	cert, err := a.certs.Get(ctx, id)
	if err != nil {
		a.notifier.Notify(err.Error(), notify.SeverityError)
		return err
	}

	image, err := a.renderer.Render(cert)
	if err != nil {
		a.notifier.Notify("Snapshot failed: "+err.Error(), notify.SeverityError)
		return err
	}

	dir, err := filex.EnsureDir(a.config.SnapshotDir)
	if err != nil {
		a.notifier.Notify(err.Error(), notify.SeverityError)
		return err
	}

	path := filepath.Join(dir, "cert-"+cert.ID+".png")
	if err := os.WriteFile(path, image, 0o600); err != nil {
		a.notifier.Notify("Saving snapshot failed: "+err.Error(), notify.SeverityError)
		return err
	}

	a.notifier.Notify("Snapshot saved to "+path, notify.SeveritySuccess)
	return nil
}
