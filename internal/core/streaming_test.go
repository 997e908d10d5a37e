package core_test

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/faa-hf/confsite/internal/core"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
		{
			name:     "BOM only stripped once",
			input:    []byte{0xEF, 0xBB, 0xBF, 0xEF, 0xBB, 0xBF, 'x'},
			expected: string([]byte{0xEF, 0xBB, 0xBF, 'x'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := core.NewBOMSkippingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8DroppingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "valid multibyte",
			input:    []byte("Zürich,東京"),
			expected: "Zürich,東京",
		},
		{
			name:     "invalid single byte dropped",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "helo",
		},
		{
			name:     "latin-1 accent dropped",
			input:    []byte("caf\xE9,ok"),
			expected: "caf,ok",
		},
		{
			name:     "truncated rune at EOF dropped",
			input:    []byte{'a', 0xE6, 0x9D},
			expected: "a",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := core.NewUTF8DroppingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8DroppingReader_RuneSplitAcrossReads(t *testing.T) {
	input := []byte("Zürich,東京,caf\xE9")
	reader := core.NewUTF8DroppingReader(iotest.OneByteReader(bytes.NewReader(input)))

	buf := make([]byte, 0, len(input))
	chunk := make([]byte, 8)
	for {
		n, err := reader.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got, want := string(buf), "Zürich,東京,caf"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrapForDecoding(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nM\xFCller\n")...)
	result, err := io.ReadAll(core.WrapForDecoding(bytes.NewReader(input)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(result), "name\nMller\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
