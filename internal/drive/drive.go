// Package drive rewrites links to seminar content so they point at the
// published Google Drive copies.
package drive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/faa-hf/confsite/internal/databag"
)

// ErrNotInDrive is returned for a seminar content path missing from the bag.
var ErrNotInDrive = errors.New("path not in drive")

// Default settings, matching the conference site.
const (
	DefaultBag       = "drivepaths"
	DefaultMarker    = "/seminarContent"
	DefaultURLFormat = "https://drive.google.com/file/d/%s/view?usp=sharing"
)

// Resolver maps site paths to Drive URLs through a databag.
type Resolver struct {
	store     databag.Store
	bag       string
	marker    string
	urlFormat string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBag sets the databag holding path to file id mappings.
func WithBag(name string) Option { return func(r *Resolver) { r.bag = name } }

// WithMarker sets the path segment that must resolve through Drive.
func WithMarker(marker string) Option { return func(r *Resolver) { r.marker = marker } }

// WithURLFormat sets the Drive URL pattern; %s receives the file id.
func WithURLFormat(format string) Option { return func(r *Resolver) { r.urlFormat = format } }

// NewResolver creates a resolver over store.
func NewResolver(store databag.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:     store,
		bag:       DefaultBag,
		marker:    DefaultMarker,
		urlFormat: DefaultURLFormat,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Marker returns the seminar content path segment.
func (r *Resolver) Marker() string {
	return r.marker
}

// Applies reports whether link must go through Drive.
func (r *Resolver) Applies(link string) bool {
	return strings.Contains(link, r.marker)
}

// Resolve returns the Drive URL for path.
//
// Seminar content paths are cut down to start at the marker and must be
// in the bag. Other paths are looked up too, but fall back to themselves
// when absent.
func (r *Resolver) Resolve(ctx context.Context, path string) (string, error) {
	p := path
	seminar := r.Applies(path)
	if seminar && !strings.HasPrefix(path, r.marker+"/") {
		p = p[strings.Index(p, r.marker):]
	}

	paths, err := r.store.Bag(ctx, r.bag)
	if err != nil && !errors.Is(err, databag.ErrBagNotFound) {
		return "", fmt.Errorf("drive: %w", err)
	}

	id, ok := paths[p]
	if !ok {
		if seminar {
			return "", fmt.Errorf("drive: %w: %s", ErrNotInDrive, p)
		}
		return p, nil
	}

	return fmt.Sprintf(r.urlFormat, id), nil
}
