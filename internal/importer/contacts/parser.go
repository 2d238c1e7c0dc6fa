package contacts

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/salon/internal/encoding"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// ErrNoHeader is returned when no known contacts header is found.
var ErrNoHeader = errors.New("no contacts header found: expected a name and a phone column")

// Parser reads phone-book CSV exports and produces client params.
// It auto-detects the delimiter and which export format is being used by
// matching column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]salon.ClientParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read contacts: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:]), nil
	}

	return nil, ErrNoHeader
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].matches(cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// parseRows extracts clients from data rows. Rows without a name or a phone
// are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string) []salon.ClientParams {
	var out []salon.ClientParams

	for _, row := range rows {
		var parts []string

		for _, c := range p.NameCols {
			if v := cellValue(row, cols, c); v != "" {
				parts = append(parts, v)
			}
		}

		name := strings.Join(parts, " ")
		phone := firstPhone(row, cols, p.PhoneCols)

		if name == "" || phone == "" {
			continue
		}

		out = append(out, salon.ClientParams{
			Name:  name,
			Phone: phone,
			Email: cellValue(row, cols, p.EmailCol),
			Notes: cellValue(row, cols, p.NotesCol),
		})
	}

	return out
}

// firstPhone returns the first non-empty phone. Google exports several
// numbers in one cell separated by " ::: ".
func firstPhone(row []string, cols colIndex, names []string) string {
	for _, name := range names {
		v := cellValue(row, cols, name)
		if v == "" {
			continue
		}

		first, _, _ := strings.Cut(v, ":::")

		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	return ""
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
