package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// DefaultKey is the key the salon document is stored under.
const DefaultKey = "salon_app_v1"

// DocumentStore is the salon repository backed by a KV.
type DocumentStore struct {
	kv     KV
	key    string
	logger *slog.Logger
}

func NewDocumentStore(kv KV, key string) *DocumentStore {
	if key == "" {
		key = DefaultKey
	}

	return &DocumentStore{kv: kv, key: key, logger: slog.Default()}
}

// Load returns the stored document. Nothing stored, an unreadable value or a
// failed read all yield the default document so the app can always start.
func (s *DocumentStore) Load(ctx context.Context) (*salon.Document, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to read stored document, using defaults", "key", s.key, "error", err)
		}

		return salon.NewDocument(), nil
	}

	var doc salon.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Error("stored document is malformed, using defaults", "key", s.key, "error", err)
		return salon.NewDocument(), nil
	}

	if doc.Clients == nil {
		doc.Clients = []salon.Client{}
	}

	if len(doc.Procedures) == 0 {
		doc.Procedures = salon.DefaultProcedures()
	}

	if doc.Appointments == nil {
		doc.Appointments = []salon.Appointment{}
	}

	return &doc, nil
}

func (s *DocumentStore) Save(ctx context.Context, doc *salon.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("storing document: %w", err)
	}

	return nil
}
