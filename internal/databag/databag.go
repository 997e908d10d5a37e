// Package databag provides site-wide key/value data ("databags") to
// templates and link rewriting.
//
// A bag is a flat map of string keys to string values. Nested sections
// are flattened with a dot: section "speakers" key "chair" becomes
// "speakers.chair". The drive path bag maps site paths such as
// /seminarContent/2023/talk.pdf to Google Drive file ids.
package databag

import (
	"context"
	"errors"
)

// ErrBagNotFound is returned when no store has a bag with the given name.
var ErrBagNotFound = errors.New("databag not found")

// Store looks up bags by name.
type Store interface {
	Bag(ctx context.Context, name string) (map[string]string, error)
}

// chain tries stores in order.
type chain []Store

// Chain returns a Store that answers from the first store holding the
// bag. Errors other than ErrBagNotFound stop the search.
func Chain(stores ...Store) Store {
	return chain(stores)
}

func (c chain) Bag(ctx context.Context, name string) (map[string]string, error) {
	for _, s := range c {
		bag, err := s.Bag(ctx, name)
		if err == nil {
			return bag, nil
		}
		if !errors.Is(err, ErrBagNotFound) {
			return nil, err
		}
	}
	return nil, ErrBagNotFound
}

// Static is an in-memory store, mostly for tests and one-off tools.
type Static map[string]map[string]string

// Bag implements Store.
func (s Static) Bag(_ context.Context, name string) (map[string]string, error) {
	bag, ok := s[name]
	if !ok {
		return nil, ErrBagNotFound
	}
	return bag, nil
}
