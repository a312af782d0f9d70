package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/certmint/internal/common"
	"github.com/dmitrijs2005/certmint/internal/minting"
	"github.com/dmitrijs2005/certmint/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWallet struct {
	address   string
	connected bool
}

func (w *fakeWallet) CurrentAddress() (string, bool) {
	return w.address, w.connected
}

// fakeRenderer implements Snapshotter and records the rendered certificates.
type fakeRenderer struct {
	png      []byte
	err      error
	calls    int32
	rendered []models.Certificate
}

func (r *fakeRenderer) Render(cert models.Certificate) ([]byte, error) {
	atomic.AddInt32(&r.calls, 1)
	r.rendered = append(r.rendered, cert)
	if r.err != nil {
		return nil, r.err
	}
	return r.png, nil
}

type fakeMinter struct {
	receipt *minting.Receipt
	err     error
	calls   int32

	// when set, Submit blocks until the context expires and returns its error
	waitCtx bool

	// when set, Submit signals started and blocks until release is closed
	started chan struct{}
	release chan struct{}
}

func (m *fakeMinter) Submit(ctx context.Context, meta minting.Metadata, image []byte) (*minting.Receipt, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.waitCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.started != nil {
		m.started <- struct{}{}
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

func newMintFixture(t *testing.T, wallet *fakeWallet, renderer *fakeRenderer, minter *fakeMinter, timeout time.Duration) (*MintService, string) {
	t.Helper()
	certs, _ := newTestService(t)
	cert, err := certs.Create(context.Background(), "Diploma", "Awarded for excellence")
	require.NoError(t, err)

	return NewMintService(certs, wallet, renderer, minter, timeout, testLogger()), cert.ID
}

func TestMint_UnknownCertificate(t *testing.T) {
	svc, _ := newMintFixture(t, &fakeWallet{}, &fakeRenderer{}, &fakeMinter{}, 0)

	_, err := svc.Mint(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMint_NoWallet_NoExternalCalls(t *testing.T) {
	renderer := &fakeRenderer{png: []byte("png")}
	minter := &fakeMinter{}
	svc, certID := newMintFixture(t, &fakeWallet{connected: false}, renderer, minter, 0)

	_, err := svc.Mint(context.Background(), certID)
	require.ErrorIs(t, err, common.ErrNoWallet)

	assert.Zero(t, atomic.LoadInt32(&renderer.calls), "no snapshot may be taken without a wallet")
	assert.Zero(t, atomic.LoadInt32(&minter.calls), "no submission may happen without a wallet")
}

func TestMint_Success(t *testing.T) {
	want := &minting.Receipt{
		MintAddress: "mint111",
		Signature:   "sig111",
		ExplorerURL: "https://explorer.solana.com/tx/sig111",
	}
	renderer := &fakeRenderer{png: []byte("png")}
	minter := &fakeMinter{receipt: want}
	wallet := &fakeWallet{address: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", connected: true}
	svc, certID := newMintFixture(t, wallet, renderer, minter, 0)

	got, err := svc.Mint(context.Background(), certID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.Len(t, renderer.rendered, 1)
	assert.Equal(t, certID, renderer.rendered[0].ID)
	assert.False(t, svc.IsProcessing(certID))
}

func TestMint_SnapshotFailure(t *testing.T) {
	cause := errors.New("font not loaded")
	renderer := &fakeRenderer{err: cause}
	minter := &fakeMinter{}
	svc, certID := newMintFixture(t, &fakeWallet{address: "addr", connected: true}, renderer, minter, 0)

	_, err := svc.Mint(context.Background(), certID)

	var snapErr *SnapshotError
	require.ErrorAs(t, err, &snapErr)
	require.ErrorIs(t, err, cause)

	assert.Zero(t, atomic.LoadInt32(&minter.calls), "failed snapshot must not be submitted")
	assert.False(t, svc.IsProcessing(certID), "flag must clear on failure")
}

func TestMint_ServiceFailure_KeepsCause(t *testing.T) {
	cause := errors.New("rpc node unavailable")
	renderer := &fakeRenderer{png: []byte("png")}
	minter := &fakeMinter{err: cause}
	svc, certID := newMintFixture(t, &fakeWallet{address: "addr", connected: true}, renderer, minter, 0)

	_, err := svc.Mint(context.Background(), certID)

	var mintErr *MintServiceError
	require.ErrorAs(t, err, &mintErr)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "rpc node unavailable")

	assert.False(t, svc.IsProcessing(certID), "flag must clear on failure")
}

func TestMint_TimeoutSurfacesAsServiceError(t *testing.T) {
	renderer := &fakeRenderer{png: []byte("png")}
	minter := &fakeMinter{waitCtx: true}
	svc, certID := newMintFixture(t, &fakeWallet{address: "addr", connected: true},
		renderer, minter, 20*time.Millisecond)

	_, err := svc.Mint(context.Background(), certID)

	var mintErr *MintServiceError
	require.ErrorAs(t, err, &mintErr)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.False(t, svc.IsProcessing(certID), "flag must clear after a timeout")
}

func TestMint_ConcurrentCallForSameCertificateIsRejected(t *testing.T) {
	renderer := &fakeRenderer{png: []byte("png")}
	minter := &fakeMinter{
		receipt: &minting.Receipt{Signature: "sig"},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	wallet := &fakeWallet{address: "addr", connected: true}
	svc, certID := newMintFixture(t, wallet, renderer, minter, 0)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Mint(context.Background(), certID)
		done <- err
	}()

	<-minter.started
	assert.True(t, svc.IsProcessing(certID))

	// Second click while the first submission is in flight.
	_, err := svc.Mint(context.Background(), certID)
	require.ErrorIs(t, err, common.ErrMintInProgress)

	close(minter.release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), atomic.LoadInt32(&minter.calls),
		"exactly one external submission per user action")
	assert.False(t, svc.IsProcessing(certID))
}

func TestMint_OtherCertificatesAreNotBlocked(t *testing.T) {
	renderer := &fakeRenderer{png: []byte("png")}
	minter := &fakeMinter{
		receipt: &minting.Receipt{Signature: "sig"},
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	wallet := &fakeWallet{address: "addr", connected: true}

	certs, _ := newTestService(t)
	ctx := context.Background()
	first, err := certs.Create(ctx, "Diploma", "content")
	require.NoError(t, err)
	second, err := certs.Create(ctx, "Award", "content")
	require.NoError(t, err)

	svc := NewMintService(certs, wallet, renderer, minter, 0, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Mint(ctx, first.ID)
		done <- err
	}()
	<-minter.started

	assert.True(t, svc.IsProcessing(first.ID))
	assert.False(t, svc.IsProcessing(second.ID),
		"an in-flight mint must not block other certificates")

	close(minter.release)
	require.NoError(t, <-done)

	_, err = svc.Mint(ctx, second.ID)
	require.NoError(t, err)
}
