// Package templates holds the built-in HTML components used when a page
// has no site template of its own.
package templates

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/faa-hf/confsite/internal/core"
)

// Crumb is one breadcrumb entry.
type Crumb struct {
	Title string
	URL   string
}

// linkFields are rendered as links when non-empty.
var linkFields = map[string]string{
	core.FieldPaper:         "Paper",
	core.FieldPresentation:  "Slides",
	core.FieldVideo:         "Video",
	core.FieldAbstractsFile: "Abstracts",
}

// LinkFunc maps a link field value to the href written for it. An empty
// href renders the label without a link.
type LinkFunc func(ctx context.Context, value string) string

type linksKey struct{}

// WithLinks makes table cells resolve link fields through fn.
func WithLinks(ctx context.Context, fn LinkFunc) context.Context {
	return context.WithValue(ctx, linksKey{}, fn)
}

func linkHref(ctx context.Context, value string) string {
	if fn, ok := ctx.Value(linksKey{}).(LinkFunc); ok && fn != nil {
		return fn(ctx, value)
	}
	return value
}

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Layout wraps body in the site chrome.
func Layout(title string, crumbs []Crumb, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, templ.EscapeString(title), `</title></head><body>`,
		); err != nil {
			return err
		}
		if err := Breadcrumbs(crumbs).Render(ctx, w); err != nil {
			return err
		}
		if err := write(w, `<main><h1>`, templ.EscapeString(title), `</h1>`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, `</main></body></html>`)
	})
}

// Breadcrumbs renders the trail; the last entry is the current page.
func Breadcrumbs(crumbs []Crumb) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(crumbs) == 0 {
			return nil
		}
		if err := write(w, `<nav class="breadcrumbs"><ol>`); err != nil {
			return err
		}
		for i, c := range crumbs {
			var err error
			if i == len(crumbs)-1 {
				err = write(w, `<li aria-current="page">`, templ.EscapeString(c.Title), `</li>`)
			} else {
				err = write(w, `<li><a href="`, templ.EscapeString(string(templ.URL(c.URL))), `">`,
					templ.EscapeString(c.Title), `</a></li>`)
			}
			if err != nil {
				return err
			}
		}
		return write(w, `</ol></nav>`)
	})
}

// Page renders a page body, its tables, then any extra sections.
func Page(body template.HTML, tables []*core.Table, extra ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if body != "" {
			if err := write(w, `<section class="body">`, string(body), `</section>`); err != nil {
				return err
			}
		}
		if err := Collection(tables).Render(ctx, w); err != nil {
			return err
		}
		for _, c := range extra {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Collection renders tables in order.
func Collection(tables []*core.Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, t := range tables {
			if err := Table(t).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Table renders one table, one section per group when organized.
func Table(t *core.Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cols := core.Columns(t.Rows)
		if err := write(w, `<section class="table"><h2>`, templ.EscapeString(t.Title), `</h2>`); err != nil {
			return err
		}

		if t.Organized() {
			for _, g := range t.Groups {
				if err := write(w, `<h3>`, templ.EscapeString(g.Category), `</h3>`); err != nil {
					return err
				}
				if err := rowsTable(ctx, w, cols, g.Rows); err != nil {
					return err
				}
			}
		} else if err := rowsTable(ctx, w, cols, t.Rows); err != nil {
			return err
		}

		return write(w, `</section>`)
	})
}

func rowsTable(ctx context.Context, w io.Writer, cols []string, rows []core.Row) error {
	var b strings.Builder
	b.WriteString(`<table><thead><tr>`)
	for _, c := range cols {
		b.WriteString(`<th>` + templ.EscapeString(heading(c)) + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, row := range rows {
		b.WriteString(`<tr>`)
		for _, c := range cols {
			b.WriteString(`<td>` + cell(ctx, c, row[c]) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return write(w, b.String())
}

func heading(col string) string {
	if label, ok := linkFields[col]; ok {
		return label
	}
	col = strings.ReplaceAll(col, "_", " ")
	if col == "" {
		return col
	}
	return strings.ToUpper(col[:1]) + col[1:]
}

func cell(ctx context.Context, col, value string) string {
	if value == "" {
		return ""
	}
	if label, ok := linkFields[col]; ok {
		href := linkHref(ctx, value)
		if href == "" {
			return templ.EscapeString(label)
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`,
			templ.EscapeString(string(templ.URL(href))), templ.EscapeString(label))
	}
	return templ.EscapeString(value)
}

// Sponsors renders a sponsor list. Rows use name, url and level columns.
func Sponsors(rows []core.Row) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(rows) == 0 {
			return nil
		}
		var b strings.Builder
		b.WriteString(`<ul class="sponsors">`)
		for _, row := range rows {
			name := templ.EscapeString(row["name"])
			b.WriteString(`<li>`)
			if u := row["url"]; u != "" {
				b.WriteString(`<a href="` + templ.EscapeString(string(templ.URL(u))) + `">` + name + `</a>`)
			} else {
				b.WriteString(name)
			}
			if level := row["level"]; level != "" {
				b.WriteString(` <span class="level">` + templ.EscapeString(level) + `</span>`)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
		return write(w, b.String())
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w,
			`<div class="alert alert-error" role="alert"><p>`, templ.EscapeString(message), `</p>`,
			`<p class="action">`, templ.EscapeString(action), `</p>`,
			`<p class="code">Code: `, templ.EscapeString(code), `</p></div>`,
		)
	})
}
