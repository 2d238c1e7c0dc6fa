package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/salon/internal/encoding"
)

// "Nome;Telefone\nJoão;119\n" with ã as 0xE3 (Windows-1252).
var latin1Contacts = []byte{
	'N', 'o', 'm', 'e', ';', 'T', 'e', 'l', 'e', 'f', 'o', 'n', 'e', '\n',
	'J', 'o', 0xE3, 'o', ';', '1', '1', '9', '\n',
}

func TestNewUTF8Reader(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Conceição;11\n"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "UTF8Passthrough", input: []byte("Nome;Telefone\nConceição;11\n"), want: "Nome;Telefone\nConceição;11\n"},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Cauterização")...), want: "Cauterização"},
		{name: "Latin1", input: latin1Contacts, want: "Nome;Telefone\nJoão;119\n"},
		{name: "UTF16LE", input: utf16, want: "Conceição;11\n"},
		{name: "Empty", input: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestToUTF8(t *testing.T) {
	got, err := encoding.ToUTF8(latin1Contacts)
	require.NoError(t, err)
	assert.Equal(t, "Nome;Telefone\nJoão;119\n", string(got))

	got, err = encoding.ToUTF8(append([]byte{0xEF, 0xBB, 0xBF}, '{', '}'))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

func TestNewUTF8Reader_LongUTF8(t *testing.T) {
	// A multi-byte rune straddling the sniff window must not force a
	// Windows-1252 fallback.
	input := bytes.Repeat([]byte("a"), 4095)
	input = append(input, []byte("ção")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, string(input), string(got))
}
