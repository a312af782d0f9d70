// Package services contains the application services of certmint: the
// certificate store, which owns the authoritative in-memory collection, and
// the minting coordinator, which turns one certificate into one NFT
// submission.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/certmint/internal/common"
	"github.com/dmitrijs2005/certmint/internal/logging"
	"github.com/dmitrijs2005/certmint/internal/models"
	"github.com/dmitrijs2005/certmint/internal/repositories/certificates"
	"github.com/google/uuid"
)

// CertificateService is the authoritative owner of the certificate
// collection. All mutations go through it; no caller ever holds a reference
// into the underlying slice, which is what keeps the identity and timestamp
// invariants enforceable in one place.
//
// Every mutation updates the in-memory collection first and then pushes the
// whole collection to the repository. A failed save is logged as a warning
// and the in-memory state stays authoritative for the session.
type CertificateService struct {
	mu       sync.Mutex
	certs    []models.Certificate // insertion order
	repo     certificates.Repository
	log      logging.Logger
	onDelete []func(id string)

	now func() time.Time // test seam
}

// NewCertificateService loads the persisted collection and returns a ready
// store. Load failures leave the store empty but usable.
func NewCertificateService(ctx context.Context, repo certificates.Repository, log logging.Logger) *CertificateService {
	s := &CertificateService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}

	certs, err := repo.Load(ctx)
	if err != nil {
		log.Warn(ctx, "loading persisted certificates failed, starting empty", "error", err)
		certs = nil
	}
	s.certs = certs
	return s
}

// OnDelete registers an observer invoked with the id of every successfully
// deleted certificate. A consumer holding a "selected" record uses this to
// invalidate its selection instead of silently pointing at a gone record.
func (s *CertificateService) OnDelete(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDelete = append(s.onDelete, fn)
}

// Create validates the fields, allocates a fresh id and appends the new
// certificate to the collection.
func (s *CertificateService) Create(ctx context.Context, title, content string) (models.Certificate, error) {
	title, content, err := models.ValidateFields(title, content)
	if err != nil {
		return models.Certificate{}, err
	}

	now := s.now()
	cert := models.Certificate{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.certs = append(s.certs, cert)
	s.persist(ctx)
	return cert, nil
}

// Update replaces title and content of an existing certificate, advances
// UpdatedAt and marks it as edited. ID and CreatedAt never change.
func (s *CertificateService) Update(ctx context.Context, id, title, content string) (models.Certificate, error) {
	title, content, err := models.ValidateFields(title, content)
	if err != nil {
		return models.Certificate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Certificate{}, fmt.Errorf("updating %s: %w", id, common.ErrNotFound)
	}

	s.certs[i].Title = title
	s.certs[i].Content = content
	s.certs[i].UpdatedAt = s.now()
	s.certs[i].LastEdited = true

	s.persist(ctx)
	return s.certs[i], nil
}

// Delete removes a certificate from the collection. Deleting an unknown id
// returns ErrNotFound. Registered OnDelete observers are notified after the
// mutation is complete and persisted.
func (s *CertificateService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()

	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("deleting %s: %w", id, common.ErrNotFound)
	}

	s.certs = append(s.certs[:i], s.certs[i+1:]...)
	s.persist(ctx)
	observers := make([]func(string), len(s.onDelete))
	copy(observers, s.onDelete)
	s.mu.Unlock()

	// Observers run outside the lock so they may call back into the store.
	for _, fn := range observers {
		fn(id)
	}
	return nil
}

// Get returns a copy of the certificate with the given id.
func (s *CertificateService) Get(ctx context.Context, id string) (models.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Certificate{}, fmt.Errorf("certificate %s: %w", id, common.ErrNotFound)
	}
	return s.certs[i], nil
}

// List returns a copy of all certificates in insertion order.
func (s *CertificateService) List(ctx context.Context) []models.Certificate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Certificate, len(s.certs))
	copy(out, s.certs)
	return out
}

// indexOf must be called with s.mu held.
func (s *CertificateService) indexOf(id string) int {
	for i := range s.certs {
		if s.certs[i].ID == id {
			return i
		}
	}
	return -1
}

// persist pushes the whole collection to the repository. Must be called with
// s.mu held. Failures are reported but never roll back the in-memory state.
func (s *CertificateService) persist(ctx context.Context) {
	snapshot := make([]models.Certificate, len(s.certs))
	copy(snapshot, s.certs)

	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.log.Warn(ctx, "saving certificates failed, in-memory state remains authoritative",
			"count", len(snapshot), "error", err)
	}
}
