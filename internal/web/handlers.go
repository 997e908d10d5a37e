package web

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/faa-hf/confsite/internal/core"
	"github.com/faa-hf/confsite/internal/funcs"
	"github.com/faa-hf/confsite/internal/logging"
	"github.com/faa-hf/confsite/internal/palette"
	"github.com/faa-hf/confsite/internal/site"
	"github.com/faa-hf/confsite/internal/web/templates"
)

// maxPaletteColors caps /api/palette?n=.
const maxPaletteColors = palette.MaxCount

// TablesResponse is the body of /api/tables/*.
type TablesResponse struct {
	Page      string                `json:"page"`
	Organized bool                  `json:"organized"`
	Tables    []*core.Table         `json:"tables"`
	Flags     map[string]core.Flags `json:"flags"`
}

// SponsorsResponse is the body of /api/sponsors.
type SponsorsResponse struct {
	Year     string     `json:"year,omitempty"`
	Sponsors []core.Row `json:"sponsors"`
}

// PaletteResponse is the body of /api/palette.
type PaletteResponse struct {
	HSL []string `json:"hsl"`
	Hex []string `json:"hex"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// queryBool reads a boolean query parameter; anything unparsable is false.
func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	page, err := s.tree.Page(chi.URLParam(r, "*"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	organized := queryBool(r, "organized")
	tables, err := core.LoadCollection(page.Attachments(), organized)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	flags := make(map[string]core.Flags, len(tables))
	for _, t := range tables {
		flags[t.Title] = core.ClassificationFlags(t.Rows)
	}

	writeJSON(w, r, TablesResponse{
		Page:      page.Path,
		Organized: organized,
		Tables:    tables,
		Flags:     flags,
	})
}

func (s *Server) sponsorsPage() string {
	if s.funcs.SponsorsPage != "" {
		return s.funcs.SponsorsPage
	}
	return funcs.DefaultSponsorsPage
}

func (s *Server) handleSponsors(w http.ResponseWriter, r *http.Request) {
	page, err := s.tree.Page(s.sponsorsPage())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	year := strings.TrimSpace(r.URL.Query().Get("year"))
	rows, err := core.Sponsors(page.Attachments(), year)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, SponsorsResponse{Year: year, Sponsors: rows})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	n := s.funcs.DefaultColors
	if n <= 0 {
		n = palette.DefaultCount
	}
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "n must be an integer", http.StatusBadRequest)
			return
		}
		n = min(parsed, maxPaletteColors)
	}

	writeJSON(w, r, PaletteResponse{
		HSL: palette.UniqueColors(n),
		Hex: palette.UniqueHexColors(n),
	})
}

// handlePage serves an attachment file or renders a page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if att, ok := s.tree.File(r.URL.Path); ok {
		http.ServeFile(w, r, att.Path())
		return
	}

	page, err := s.tree.Page(r.URL.Path)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if r.URL.Path != page.Path {
		target := page.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	var buf bytes.Buffer
	if name := s.siteTemplate(page); name != "" {
		err = s.renderSiteTemplate(r.Context(), &buf, name, page, queryBool(r, "organized"))
	} else {
		err = s.renderDefault(r, &buf, page)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Debug("write page", "error", err)
	}
}

// renderDefault renders the built-in layout: markdown body, then tables,
// then sponsors when the page carries a sponsors list.
func (s *Server) renderDefault(r *http.Request, buf *bytes.Buffer, page *site.Page) error {
	ctx := r.Context()

	body, err := s.funcs.Markdown.Render(ctx, page.Path, page.Field("body"))
	if err != nil {
		return err
	}

	// Unreadable CSVs degrade to empty sections, as in site templates.
	organized := queryBool(r, "organized") || page.Bool("organized")
	tables, err := core.LoadCollection(page.Attachments(), organized)
	if err != nil {
		logging.WithFields(ctx, "page", page.Path).Warn("tables unavailable", "error", err)
		tables = []*core.Table{}
	}

	sponsors, err := core.Sponsors(page.Attachments(), strings.TrimSpace(r.URL.Query().Get("year")))
	if err != nil {
		logging.WithFields(ctx, "page", page.Path).Warn("sponsors unavailable", "error", err)
		sponsors = []core.Row{}
	}

	var crumbs []templates.Crumb
	for _, p := range site.FilterBreadcrumbs(site.ReverseAncestry(page)) {
		crumbs = append(crumbs, templates.Crumb{Title: p.Title(), URL: p.Path})
	}

	content := templates.Page(body, tables, templates.Sponsors(sponsors))
	ctx = templates.WithLinks(ctx, s.tableLink)
	return templates.Layout(page.Title(), crumbs, content).Render(ctx, buf)
}

// tableLink sends table link fields through the drive resolver. A link
// with no Drive copy is logged and rendered without an href.
func (s *Server) tableLink(ctx context.Context, value string) string {
	if s.funcs.Drive == nil {
		return value
	}
	href, err := s.funcs.Drive.Resolve(ctx, value)
	if err != nil {
		logging.WithFields(ctx, "link", value).Warn("table link unavailable", "error", err)
		return ""
	}
	return href
}
