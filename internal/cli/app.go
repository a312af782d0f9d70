package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/certmint/internal/config"
	"github.com/dmitrijs2005/certmint/internal/logging"
	"github.com/dmitrijs2005/certmint/internal/minting"
	"github.com/dmitrijs2005/certmint/internal/notify"
	"github.com/dmitrijs2005/certmint/internal/render"
	"github.com/dmitrijs2005/certmint/internal/repositories/certificates"
	"github.com/dmitrijs2005/certmint/internal/services"
	"github.com/dmitrijs2005/certmint/internal/wallet"
)

// App ties the application services together with the interactive loop.
//
// selectedID tracks the certificate last viewed with "show"; commands that
// need an id offer it as the default. The store's OnDelete hook clears the
// selection when the selected certificate is removed.
type App struct {
	config   *config.Config
	log      logging.Logger
	certs    *services.CertificateService
	minter   *services.MintService
	renderer services.Snapshotter
	wallet   *wallet.Session
	notifier notify.Notifier

	reader     *bufio.Reader
	out        io.Writer
	selectedID string
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {

	repo := certificates.NewFileRepository(c.DataFile, log)
	certService := services.NewCertificateService(ctx, repo, log)

	renderer := render.NewCardRenderer(c.FontPath, c.TitleFontSize, c.BodyFontSize)
	session := wallet.NewSession(c.WalletKeyFile, log)

	assets, err := minting.NewS3AssetStore(ctx, minting.S3Config{
		BaseEndpoint: c.S3BaseEndpoint,
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing asset store: %w", err)
	}

	solana := minting.NewSolanaMinter(c.SolanaRPCURL, session, assets, c.ExplorerBaseURL, log)
	mintService := services.NewMintService(certService, session, renderer, solana, c.MintTimeout, log)

	app := &App{
		config:   c,
		log:      log,
		certs:    certService,
		minter:   mintService,
		renderer: renderer,
		wallet:   session,
		notifier: notify.NewConsoleNotifier(os.Stdout),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	certService.OnDelete(func(id string) {
		if app.selectedID == id {
			app.selectedID = ""
			app.notifier.Notify("Selected certificate was deleted, selection cleared", notify.SeverityWarning)
		}
	})

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isConnected() bool {
	_, ok := a.wallet.CurrentAddress()
	return ok
}

// getStatus renders the prompt suffix: the short wallet address when
// connected, plus the currently selected certificate id, if any.
func (a *App) getStatus() string {
	s := ""
	if address, ok := a.wallet.CurrentAddress(); ok {
		s = wallet.ShortAddress(address)
	}
	if a.selectedID != "" {
		if s != "" {
			s += " "
		}
		s += "#" + shortID(a.selectedID)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
