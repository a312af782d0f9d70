package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/certmint/internal/common"
	"github.com/dmitrijs2005/certmint/internal/logging"
	"github.com/dmitrijs2005/certmint/internal/minting"
	"github.com/dmitrijs2005/certmint/internal/models"
)

// Snapshotter produces the rasterized card image of a certificate.
type Snapshotter interface {
	Render(cert models.Certificate) ([]byte, error)
}

// WalletSession exposes the currently connected wallet address, if any.
type WalletSession interface {
	CurrentAddress() (string, bool)
}

// SnapshotError reports a failed snapshot render.
type SnapshotError struct {
	Err error
}

func (e *SnapshotError) Error() string { return "snapshot failed: " + e.Err.Error() }
func (e *SnapshotError) Unwrap() error { return e.Err }

// MintServiceError reports a failed submission to the minting backend and
// carries the underlying cause for display to the user.
type MintServiceError struct {
	Err error
}

func (e *MintServiceError) Error() string { return "mint failed: " + e.Err.Error() }
func (e *MintServiceError) Unwrap() error { return e.Err }

// MintService coordinates "submit certificate + snapshot to the minting
// backend" for one certificate at a time. While a mint for a certificate is
// in flight, a second call for the same certificate is rejected with
// ErrMintInProgress; other certificates are unaffected.
//
// The coordinator keeps no state beyond the in-flight set: it does not cache
// prior results or mark certificates as minted, so re-minting is always
// allowed. No idempotency key is sent either, which means a transport-level
// retry could mint a duplicate; that behavior is inherited deliberately.
type MintService struct {
	certs    *CertificateService
	wallet   WalletSession
	renderer Snapshotter
	minter   minting.Minter
	log      logging.Logger

	// timeout bounds one whole mint attempt; zero means no limit.
	timeout time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewMintService(certs *CertificateService, wallet WalletSession, renderer Snapshotter,
	minter minting.Minter, timeout time.Duration, log logging.Logger) *MintService {
	return &MintService{
		certs:    certs,
		wallet:   wallet,
		renderer: renderer,
		minter:   minter,
		timeout:  timeout,
		log:      log,
		inFlight: make(map[string]struct{}),
	}
}

// IsProcessing reports whether a mint for the given certificate is in
// flight. Callers use it to disable the triggering action.
func (s *MintService) IsProcessing(certID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[certID]
	return ok
}

// Mint renders a snapshot of the certificate and submits it together with
// the certificate metadata to the minting backend.
//
// Failure modes, in the order they are checked:
//   - common.ErrNotFound: unknown certificate id, nothing attempted;
//   - common.ErrNoWallet: no connected address, no I/O attempted;
//   - common.ErrMintInProgress: a mint for this certificate is in flight;
//   - *SnapshotError, *MintServiceError: external call failures, cause kept.
//
// The in-flight flag is cleared on every path, success or failure.
func (s *MintService) Mint(ctx context.Context, certID string) (*minting.Receipt, error) {
	cert, err := s.certs.Get(ctx, certID)
	if err != nil {
		return nil, err
	}

	address, ok := s.wallet.CurrentAddress()
	if !ok {
		return nil, common.ErrNoWallet
	}

	if !s.begin(certID) {
		return nil, common.ErrMintInProgress
	}
	defer s.end(certID)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	image, err := s.renderer.Render(cert)
	if err != nil {
		return nil, &SnapshotError{Err: err}
	}

	receipt, err := s.minter.Submit(ctx, minting.Metadata{
		CertificateID: cert.ID,
		Title:         cert.Title,
		Description:   cert.Content,
		Owner:         address,
		IssuedAt:      cert.CreatedAt,
		UpdatedAt:     cert.UpdatedAt,
		Edited:        cert.LastEdited,
	}, image)
	if err != nil {
		return nil, &MintServiceError{Err: err}
	}

	s.log.Info(ctx, "mint submitted",
		"certificate_id", cert.ID, "signature", receipt.Signature)
	return receipt, nil
}

func (s *MintService) begin(certID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[certID]; busy {
		return false
	}
	s.inFlight[certID] = struct{}{}
	return true
}

func (s *MintService) end(certID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, certID)
}
