package core

// streaming.go wraps CSV sources so decoding never fails:
//
//   - BOMSkippingReader: removes a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//   - UTF8DroppingReader: drops bytes that are not valid UTF-8
//
// Use WrapForDecoding to apply both in the correct order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader skips the UTF-8 BOM on first read if present.
// Spreadsheet exports from Windows tools commonly start with one, and it
// would otherwise end up glued to the first header name.
type BOMSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{r: bufio.NewReader(r)}
}

// Read implements io.Reader.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.r.Peek(len(utf8BOM))
		if err != nil && err != io.EOF {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// UTF8DroppingReader removes invalid UTF-8 byte sequences on the fly.
// Bytes are dropped rather than replaced so the output never grows and
// sanitizing can happen in place.
type UTF8DroppingReader struct {
	reader io.Reader

	// Leftover bytes from the previous read that may start a multi-byte rune
	pending []byte
}

// NewUTF8DroppingReader creates a new sanitizing reader.
func NewUTF8DroppingReader(r io.Reader) *UTF8DroppingReader {
	return &UTF8DroppingReader{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

// Read implements io.Reader.
func (s *UTF8DroppingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for {
		offset := copy(p, s.pending)
		s.pending = s.pending[:0]

		n, err := s.reader.Read(p[offset:])
		n += offset
		if n == 0 {
			return 0, err
		}

		kept := s.sanitize(p[:n], err != nil)
		// Everything read was dropped or held back; read again rather than
		// returning 0, nil, which io.Reader discourages.
		if kept == 0 && err == nil {
			continue
		}
		return kept, err
	}
}

// sanitize compacts valid runes to the front of data and returns their
// length. Unless final, an incomplete rune at the end is kept in pending.
func (s *UTF8DroppingReader) sanitize(data []byte, final bool) int {
	if isASCII(data) {
		return len(data)
	}

	write := 0
	for read := 0; read < len(data); {
		if data[read] < utf8.RuneSelf {
			data[write] = data[read]
			write++
			read++
			continue
		}

		if !final && !utf8.FullRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			break
		}

		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}

	return write
}

// isASCII is the fast path: most conference CSVs are plain ASCII.
func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// WrapForDecoding strips the BOM first, then drops invalid UTF-8.
func WrapForDecoding(r io.Reader) io.Reader {
	return NewUTF8DroppingReader(NewBOMSkippingReader(r))
}
