// Package certificates implements the persistence adapter for the
// certificate collection. The collection is read and written as a whole:
// one named blob holding every record, reloaded on start and rewritten on
// every change.
package certificates

import (
	"context"

	"github.com/dmitrijs2005/certmint/internal/models"
)

// Repository describes load/save operations for the certificate collection.
// Implementations are typically backed by a local JSON file.
type Repository interface {
	// Load returns all persisted certificates in their stored order.
	// Missing or unreadable prior state yields an empty slice, not an
	// error: persistence is best-effort and must never take the store down.
	Load(ctx context.Context) ([]models.Certificate, error)

	// Save replaces the persisted state with the given collection,
	// preserving its order.
	Save(ctx context.Context, certs []models.Certificate) error
}
