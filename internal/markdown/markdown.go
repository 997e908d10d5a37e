// Package markdown renders page body text with goldmark, rewriting
// links for the conference site.
//
// A link target starting with "!" is rendered with rel="nofollow".
// Targets without a scheme are resolved against the page URL, and
// targets under the drive marker are replaced with their Drive URL.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/faa-hf/confsite/internal/drive"
)

// NofollowPrefix marks a link target as rel="nofollow".
const NofollowPrefix = "!"

// Renderer converts markdown to HTML.
type Renderer struct {
	drive *drive.Resolver
}

// New returns a renderer. A nil resolver leaves drive links untouched.
func New(resolver *drive.Resolver) *Renderer {
	return &Renderer{drive: resolver}
}

// Render converts source for the page at pagePath.
func (r *Renderer) Render(ctx context.Context, pagePath, source string) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&linkRenderer{ctx: ctx, page: pagePath, r: r}, 100),
			),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: %s: %w", pagePath, err)
	}
	return template.HTML(buf.String()), nil
}

// RewriteLink returns the final href for link on the page at pagePath
// and whether it is nofollow.
func (r *Renderer) RewriteLink(ctx context.Context, pagePath, link string) (string, bool, error) {
	nofollow := strings.HasPrefix(link, NofollowPrefix)
	link = strings.TrimLeft(link, NofollowPrefix)

	if u, err := url.Parse(link); err == nil && u.Scheme == "" {
		base := &url.URL{Path: pagePath}
		link = base.ResolveReference(u).String()
	}

	if r.drive != nil && r.drive.Applies(link) {
		resolved, err := r.drive.Resolve(ctx, link)
		if err != nil {
			return "", nofollow, err
		}
		link = resolved
	}

	return link, nofollow, nil
}

// linkRenderer replaces goldmark's link output for one Render call.
type linkRenderer struct {
	ctx  context.Context
	page string
	r    *Renderer
}

func (l *linkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, l.renderLink)
}

func (l *linkRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	n := node.(*ast.Link)
	href, nofollow, err := l.r.RewriteLink(l.ctx, l.page, string(n.Destination))
	if err != nil {
		return ast.WalkStop, err
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML([]byte(href)))
	_ = w.WriteByte('"')
	if len(n.Title) > 0 {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	if nofollow {
		_, _ = w.WriteString(` rel="nofollow"`)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}
