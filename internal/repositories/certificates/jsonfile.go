package certificates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/certmint/internal/logging"
	"github.com/dmitrijs2005/certmint/internal/models"
)

// FileRepository stores the collection as a single JSON array in a file.
type FileRepository struct {
	path string
	log  logging.Logger
}

// NewFileRepository returns a FileRepository writing to the given path.
func NewFileRepository(path string, log logging.Logger) *FileRepository {
	return &FileRepository{path: path, log: log}
}

// Load reads the whole collection from disk. A missing file means no prior
// state and returns an empty slice. A file that cannot be parsed is treated
// the same way; the condition is logged as a warning, not returned as an
// error, so corrupted state never crashes the caller.
func (r *FileRepository) Load(ctx context.Context) ([]models.Certificate, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Debug(ctx, "no persisted state found, starting empty", "path", r.path)
			return []models.Certificate{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}

	var certs []models.Certificate
	if err := json.Unmarshal(data, &certs); err != nil {
		r.log.Warn(ctx, "persisted state is malformed, starting empty",
			"path", r.path, "error", err)
		return []models.Certificate{}, nil
	}
	return certs, nil
}

// Save writes the whole collection atomically: the JSON is written to a
// temporary file in the same directory and renamed over the target, so a
// crash mid-write never leaves a partially written blob behind.
func (r *FileRepository) Save(ctx context.Context, certs []models.Certificate) error {
	data, err := json.MarshalIndent(certs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling certificates: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", r.path, err)
	}
	return nil
}
