// Package funcs builds the template functions available to site
// templates.
//
// Data loaders never fail a render: an unreadable CSV is logged and the
// template sees an empty result. Link helpers do fail, so a page cannot
// be published with a seminar link that has no Drive copy.
package funcs

import (
	"context"
	"fmt"
	"html/template"
	"reflect"
	"strings"

	"github.com/faa-hf/confsite/internal/core"
	"github.com/faa-hf/confsite/internal/drive"
	"github.com/faa-hf/confsite/internal/logging"
	"github.com/faa-hf/confsite/internal/markdown"
	"github.com/faa-hf/confsite/internal/palette"
	"github.com/faa-hf/confsite/internal/site"
)

// DefaultSponsorsPage holds the sponsors.csv attachment.
const DefaultSponsorsPage = "/sponsors/"

// Env holds what the functions need beyond their arguments.
type Env struct {
	Tree          *site.Tree
	Drive         *drive.Resolver
	Markdown      *markdown.Renderer
	SponsorsPage  string
	DefaultColors int
}

// binding ties the functions to one request and page.
type binding struct {
	env  *Env
	ctx  context.Context
	page *site.Page
}

// FuncMap returns the functions for rendering page. page may be nil for
// templates that are not tied to a page; relative links then resolve
// against the site root.
func (e *Env) FuncMap(ctx context.Context, page *site.Page) template.FuncMap {
	b := &binding{env: e, ctx: ctx, page: page}

	return template.FuncMap{
		"paper_csv":             b.paperCSV,
		"sponsors_csv":          b.sponsorsCSV,
		"parse_csv":             b.parseCSV,
		"has_abstracts_file":    core.HasAbstractsFile,
		"has_presentations":     core.HasPresentations,
		"has_papers":            core.HasPapers,
		"has_videos":            core.HasVideos,
		"has_best":              core.HasBest,
		"has_themes":            core.HasThemes,
		"get_drive_url":         b.driveURL,
		"drive":                 b.driveURL,
		"get_unique_colors":     b.uniqueColors,
		"get_unique_hex_colors": b.uniqueHexColors,
		"page_reverse_order":    site.ReverseAncestry,
		"filter_breadcrumbs":    site.FilterBreadcrumbs,
		"markdown":              b.markdown,
		"reversed":              reversed,
	}
}

func (b *binding) pagePath() string {
	if b.page == nil {
		return "/"
	}
	return b.page.Path
}

func (b *binding) warn(fn string, err error) {
	logging.WithFields(b.ctx, "func", fn, "page", b.pagePath()).
		Warn("template data unavailable", "error", err)
}

// paperCSV: {{ range paper_csv .Page.Attachments true }}
func (b *binding) paperCSV(atts []core.Attachment, organized ...bool) []*core.Table {
	organize := len(organized) > 0 && organized[0]
	tables, err := core.LoadCollection(atts, organize)
	if err != nil {
		b.warn("paper_csv", err)
		return []*core.Table{}
	}
	return tables
}

// sponsorsCSV: {{ range sponsors_csv "2023" }}. The year may also be a
// number taken from a page field.
func (b *binding) sponsorsCSV(year ...any) []core.Row {
	var y string
	if len(year) > 0 && year[0] != nil {
		y = strings.TrimSpace(fmt.Sprint(year[0]))
	}

	pagePath := b.env.SponsorsPage
	if pagePath == "" {
		pagePath = DefaultSponsorsPage
	}
	page, err := b.env.Tree.Page(pagePath)
	if err != nil {
		b.warn("sponsors_csv", err)
		return []core.Row{}
	}

	rows, err := core.Sponsors(page.Attachments(), y)
	if err != nil {
		b.warn("sponsors_csv", err)
		return []core.Row{}
	}
	return rows
}

// parseCSV returns nil when no attachment matches name.
func (b *binding) parseCSV(atts []core.Attachment, name string) []core.Row {
	rows, ok, err := core.FindCSV(atts, name)
	if err != nil {
		b.warn("parse_csv", err)
		return nil
	}
	if !ok {
		return nil
	}
	return rows
}

// driveURL backs both get_drive_url and the drive filter.
func (b *binding) driveURL(path string) (string, error) {
	if b.env.Drive == nil {
		return path, nil
	}
	return b.env.Drive.Resolve(b.ctx, path)
}

func (b *binding) colorCount(n []int) int {
	if len(n) > 0 {
		return n[0]
	}
	if b.env.DefaultColors > 0 {
		return b.env.DefaultColors
	}
	return palette.DefaultCount
}

func (b *binding) uniqueColors(n ...int) []string {
	return palette.UniqueColors(b.colorCount(n))
}

func (b *binding) uniqueHexColors(n ...int) []string {
	return palette.UniqueHexColors(b.colorCount(n))
}

func (b *binding) markdown(src string) (template.HTML, error) {
	md := b.env.Markdown
	if md == nil {
		md = markdown.New(b.env.Drive)
	}
	return md.Render(b.ctx, b.pagePath(), src)
}

// reversed returns a reversed copy of any slice.
func reversed(list any) (any, error) {
	v := reflect.ValueOf(list)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("reversed: %T is not a list", list)
	}

	n := v.Len()
	out := reflect.MakeSlice(reflect.SliceOf(v.Type().Elem()), n, n)
	for i := 0; i < n; i++ {
		out.Index(n - 1 - i).Set(v.Index(i))
	}
	return out.Interface(), nil
}
