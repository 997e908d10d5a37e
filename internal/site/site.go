// Package site reads the conference content tree: one directory per
// page, page fields in contents.lr, every other file an attachment.
//
// Pages are read on demand for each request and never cached.
package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/faa-hf/confsite/internal/core"
)

// ErrPageNotFound is returned for a URL path with no page directory.
var ErrPageNotFound = errors.New("page not found")

// Tree is a content tree rooted at a directory.
type Tree struct {
	root string
}

// NewTree returns a tree over root.
func NewTree(root string) *Tree {
	return &Tree{root: root}
}

// Root returns the content directory.
func (t *Tree) Root() string {
	return t.root
}

// CleanPath normalizes a URL path to the "/a/b/" form used for pages.
func CleanPath(urlPath string) string {
	p := path.Clean("/" + urlPath)
	if p == "/" {
		return p
	}
	return p + "/"
}

func (t *Tree) dir(clean string) string {
	return filepath.Join(t.root, filepath.FromSlash(strings.Trim(clean, "/")))
}

// Page loads the page at urlPath.
func (t *Tree) Page(urlPath string) (*Page, error) {
	clean := CleanPath(urlPath)
	dir := t.dir(clean)

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("site: %w: %s", ErrPageNotFound, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("site: %s: %w", clean, err)
	}

	fields := map[string]string{}
	f, err := os.Open(filepath.Join(dir, ContentsFile))
	switch {
	case err == nil:
		defer f.Close()
		if fields, err = ParseContents(f); err != nil {
			return nil, fmt.Errorf("site: %s: %w", clean, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("site: %s: %w", clean, err)
	}

	return &Page{tree: t, Path: clean, dir: dir, fields: fields}, nil
}

// File returns the attachment addressed by a URL path such as
// /2023/papers.csv, or false.
func (t *Tree) File(urlPath string) (*FileAttachment, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" || path.Base(clean) == ContentsFile {
		return nil, false
	}
	p := filepath.Join(t.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	info, err := os.Stat(p)
	if err != nil || info.IsDir() || !isAttachment(info.Name()) {
		return nil, false
	}
	return &FileAttachment{path: p}, true
}

// Page is one node of the content tree.
type Page struct {
	tree   *Tree
	Path   string
	dir    string
	fields map[string]string
}

// Field returns a contents.lr field, or "".
func (p *Page) Field(name string) string {
	return p.fields[name]
}

// Fields returns a copy of every field.
func (p *Page) Fields() map[string]string {
	out := make(map[string]string, len(p.fields))
	for k, v := range p.fields {
		out[k] = v
	}
	return out
}

// Title returns the title field, falling back to the last path segment.
func (p *Page) Title() string {
	if t := p.fields["title"]; t != "" {
		return t
	}
	if p.Path == "/" {
		return "Home"
	}
	return path.Base(strings.TrimSuffix(p.Path, "/"))
}

// Bool reads a boolean field such as "yes" or "true".
func (p *Page) Bool(name string) bool {
	return truthy(p.fields[name])
}

// Template returns the _template field.
func (p *Page) Template() string {
	return p.fields["_template"]
}

// SkipBreadcrumbs reports whether the page hides itself and its
// descendants from breadcrumb trails.
func (p *Page) SkipBreadcrumbs() bool {
	return p.Bool("skip_breadcrumbs")
}

// IsRoot reports whether the page is the site root.
func (p *Page) IsRoot() bool {
	return p.Path == "/"
}

// Parent returns the enclosing page, or nil at the root or when the
// parent cannot be read.
func (p *Page) Parent() *Page {
	if p.IsRoot() {
		return nil
	}
	parent, err := p.tree.Page(path.Dir(strings.TrimSuffix(p.Path, "/")))
	if err != nil {
		return nil
	}
	return parent
}

// Attachments returns the page's files sorted by name.
func (p *Page) Attachments() []core.Attachment {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && isAttachment(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	atts := make([]core.Attachment, len(names))
	for i, name := range names {
		atts[i] = &FileAttachment{path: filepath.Join(p.dir, name)}
	}
	return atts
}

// isAttachment skips the page's own field file, attachment metadata
// (*.lr) and hidden files.
func isAttachment(name string) bool {
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, ".lr")
}

// FileAttachment is an attachment stored on disk.
type FileAttachment struct {
	path string
}

// NewFileAttachment wraps a file path.
func NewFileAttachment(path string) *FileAttachment {
	return &FileAttachment{path: path}
}

// Filename returns the base name of the file.
func (a *FileAttachment) Filename() string {
	return filepath.Base(a.path)
}

// Path returns the file path on disk.
func (a *FileAttachment) Path() string {
	return a.path
}

// Open implements core.Attachment.
func (a *FileAttachment) Open() (io.ReadCloser, error) {
	return os.Open(a.path)
}
