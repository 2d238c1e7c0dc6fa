package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// Documents is the part of the salon service backups need.
type Documents interface {
	Snapshot() *salon.Document
	Replace(ctx context.Context, doc *salon.Document) error
}

type Service struct {
	docs Documents
}

func NewService(docs Documents) *Service {
	return &Service{docs: docs}
}

// Export writes the current document to w.
func (s *Service) Export(w io.Writer) error {
	return Export(w, s.docs.Snapshot())
}

// Restore replaces the current document with the backup read from r. When the
// backup is invalid the current document is left untouched.
func (s *Service) Restore(ctx context.Context, r io.Reader) (*salon.Document, error) {
	doc, err := Import(r)
	if err != nil {
		return nil, err
	}

	if err := s.docs.Replace(ctx, doc); err != nil {
		return nil, fmt.Errorf("replacing document: %w", err)
	}

	return doc, nil
}

// WriteFile stores a backup in dir and returns its path. A backup taken on the
// same day replaces the earlier one.
func (s *Service) WriteFile(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".backup-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := s.Export(tmp); err != nil {
		tmp.Close()
		return "", err
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving backup into place: %w", err)
	}

	return path, nil
}

// Prune keeps the newest keep backups in dir and deletes the rest. A keep of
// zero or less disables pruning.
func Prune(dir string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if strings.HasPrefix(e.Name(), "backup_salon_") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}

	if len(names) <= keep {
		return nil, nil
	}

	// Names embed the date as YYYY-MM-DD, so lexical order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var removed []string

	for _, name := range names[keep:] {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", name, err)
		}

		removed = append(removed, path)
	}

	return removed, nil
}
