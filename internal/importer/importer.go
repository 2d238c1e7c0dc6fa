package importer

import (
	"io"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type Format string

const (
	FormatCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]salon.ClientParams, error)
}
