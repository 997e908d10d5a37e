package web

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/faa-hf/confsite/internal/site"
)

// defaultSiteTemplate is used for pages without a _template field when
// it exists in the template directory.
const defaultSiteTemplate = "page.html"

// PageData is the dot value of site templates.
type PageData struct {
	Page      *site.Page
	Organized bool
}

// siteTemplate returns the site template for page, or "" for the
// built-in layout.
func (s *Server) siteTemplate(page *site.Page) string {
	if s.templateDir == "" {
		return ""
	}
	if name := page.Template(); name != "" {
		return filepath.Base(name)
	}
	if _, err := os.Stat(filepath.Join(s.templateDir, defaultSiteTemplate)); err == nil {
		return defaultSiteTemplate
	}
	return ""
}

// renderSiteTemplate parses every *.html file of the template directory
// and executes name. Templates are parsed per request so edits show up
// on reload.
func (s *Server) renderSiteTemplate(ctx context.Context, w io.Writer, name string, page *site.Page, organized bool) error {
	tpl, err := template.New(name).
		Funcs(s.funcs.FuncMap(ctx, page)).
		ParseGlob(filepath.Join(s.templateDir, "*.html"))
	if err != nil {
		return fmt.Errorf("template: %s: %w", name, err)
	}

	if err := tpl.ExecuteTemplate(w, name, PageData{Page: page, Organized: organized}); err != nil {
		return fmt.Errorf("template: %s: %w", name, err)
	}
	return nil
}
