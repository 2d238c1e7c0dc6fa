package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/MrJamesThe3rd/salon/internal/importer/contacts"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

//go:generate mockgen -source=service.go -destination=clients_mock.go -package=importer

// Clients is the part of the salon service the importer needs.
type Clients interface {
	Clients(search string) []salon.Client
	AddClients(ctx context.Context, params []salon.ClientParams) ([]salon.Client, error)
}

// Result reports what an import did.
type Result struct {
	Added   []salon.Client `json:"added"`
	Skipped int            `json:"skipped"`
}

type Service struct {
	clients     Clients
	csvImporter Importer
}

func NewService(clients Clients) *Service {
	return &Service{
		clients:     clients,
		csvImporter: contacts.NewParser(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]salon.ClientParams, error) {
	var importer Importer

	switch format {
	case FormatCSV, "":
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown contacts format: %s", format)
	}

	return importer.Parse(r)
}

// ImportContacts adds the contacts read from r as clients. Contacts whose
// phone number already belongs to a client, or appears earlier in the same
// file, are skipped.
func (s *Service) ImportContacts(ctx context.Context, format Format, r io.Reader) (*Result, error) {
	params, err := s.Parse(format, r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, c := range s.clients.Clients("") {
		seen[phoneKey(c.Phone)] = true
	}

	res := &Result{Added: []salon.Client{}}

	var fresh []salon.ClientParams

	for _, p := range params {
		key := phoneKey(p.Phone)
		if key == "" || seen[key] {
			res.Skipped++
			continue
		}

		seen[key] = true

		fresh = append(fresh, p)
	}

	if len(fresh) == 0 {
		return res, nil
	}

	added, err := s.clients.AddClients(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("adding clients: %w", err)
	}

	res.Added = added

	return res, nil
}

// phoneKey reduces a phone number to its digits so formatting differences
// do not defeat duplicate detection.
func phoneKey(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, phone)
}
