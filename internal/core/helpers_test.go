package core_test

import (
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/faa-hf/confsite/internal/core"
	_ "github.com/faa-hf/confsite/internal/core/tables" // Register conference kinds
)

// memAttachment is an in-memory CSV attachment. A nil data field behaves
// like a file that has disappeared from disk.
type memAttachment struct {
	name   string
	data   *string
	closed *bool
}

func csvAttachment(name, data string) memAttachment {
	closed := false
	return memAttachment{name: name, data: &data, closed: &closed}
}

func missingAttachment(name string) memAttachment {
	return memAttachment{name: name}
}

func (m memAttachment) Filename() string { return m.name }

func (m memAttachment) Open() (io.ReadCloser, error) {
	if m.data == nil {
		return nil, &fs.PathError{Op: "open", Path: m.name, Err: fs.ErrNotExist}
	}
	return &trackingCloser{Reader: strings.NewReader(*m.data), closed: m.closed}, nil
}

type trackingCloser struct {
	io.Reader
	closed *bool
}

func (t *trackingCloser) Close() error {
	*t.closed = true
	return nil
}

// failingAttachment opens fine but errors mid-read.
type failingAttachment struct {
	name   string
	closed bool
}

func (f *failingAttachment) Filename() string { return f.name }

func (f *failingAttachment) Open() (io.ReadCloser, error) {
	return &failingReader{owner: f}, nil
}

type failingReader struct {
	owner *failingAttachment
	sent  bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "a,b\n1,2\n"), nil
	}
	return 0, errors.New("disk went away")
}

func (r *failingReader) Close() error {
	r.owner.closed = true
	return nil
}

func attachments(atts ...core.Attachment) []core.Attachment { return atts }
