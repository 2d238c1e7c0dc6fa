// Package encoding normalizes user supplied files (backups, phone-book
// exports) to UTF-8. Files produced on older phones and spreadsheet tools
// frequently arrive as UTF-16 or Windows-1252.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so that it yields UTF-8 regardless of the source
// encoding. A UTF-8 byte order mark is dropped.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	enc, skip := detect(head)
	if skip > 0 {
		_, _ = br.Discard(skip)
	}

	if enc == nil {
		return br, nil
	}

	return transform.NewReader(br, enc.NewDecoder()), nil
}

// ToUTF8 converts a whole buffer to UTF-8.
func ToUTF8(data []byte) ([]byte, error) {
	enc, skip := detect(data)
	data = data[skip:]

	if enc == nil {
		return data, nil
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return out, nil
}

// detect returns the encoding of head, or nil when it is already UTF-8, and
// the number of leading bytes to drop.
func detect(head []byte) (xenc.Encoding, int) {
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		return nil, len(bomUTF8)
	case bytes.HasPrefix(head, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), 0
	case bytes.HasPrefix(head, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), 0
	}

	if utf8.Valid(trimPartialRune(head)) {
		return nil, 0
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return nil, 0
		case "ISO-8859-9":
			return charmap.ISO8859_9, 0
		}
	}

	return charmap.Windows1252, 0
}

// trimPartialRune drops a multi-byte sequence cut off by the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && i < len(b); i++ {
		end := len(b) - i
		if utf8.RuneStart(b[end-1]) {
			if !utf8.FullRune(b[end-1:]) {
				return b[:end-1]
			}

			return b
		}
	}

	return b
}
