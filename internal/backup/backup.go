// Package backup exports the salon document to a JSON file and restores it.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/salon/internal/encoding"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// ErrInvalidFormat is returned when a file is not a complete backup.
var ErrInvalidFormat = errors.New("invalid backup format")

const maxBackupSize = 32 << 20

// Export writes doc as indented JSON.
func Export(w io.Writer, doc *salon.Document) error {
	out := *doc

	// A null collection would make the file unreadable by Import.
	if out.Clients == nil {
		out.Clients = []salon.Client{}
	}

	if out.Procedures == nil {
		out.Procedures = []salon.Procedure{}
	}

	if out.Appointments == nil {
		out.Appointments = []salon.Appointment{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	return nil
}

// FileName returns the name of a backup taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("backup_salon_%s.json", now.Format(time.DateOnly))
}

// envelope keeps the collections raw so missing and null ones can be told apart.
type envelope struct {
	Clients      json.RawMessage `json:"clients"`
	Procedures   json.RawMessage `json:"procedures"`
	Appointments json.RawMessage `json:"appointments"`
}

// Import parses a backup. The file must contain the clients, procedures and
// appointments collections; otherwise ErrInvalidFormat is returned.
func Import(r io.Reader) (*salon.Document, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxBackupSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	if len(raw) > maxBackupSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidFormat, maxBackupSize)
	}

	raw, err = encoding.ToUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	for name, field := range map[string]json.RawMessage{
		"clients":      env.Clients,
		"procedures":   env.Procedures,
		"appointments": env.Appointments,
	} {
		if len(field) == 0 || bytes.Equal(field, []byte("null")) {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, name)
		}
	}

	var doc salon.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return &doc, nil
}
