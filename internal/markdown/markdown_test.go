package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/faa-hf/confsite/internal/databag"
	"github.com/faa-hf/confsite/internal/drive"
)

func testRenderer() *Renderer {
	store := databag.Static{
		"drivepaths": {"/seminarContent/2023/talk.pdf": "abc123"},
	}
	return New(drive.NewResolver(store))
}

func TestRewriteLink(t *testing.T) {
	r := testRenderer()
	ctx := context.Background()

	tests := []struct {
		name         string
		page         string
		link         string
		want         string
		wantNofollow bool
	}{
		{"absolute url", "/2023/", "https://faa.gov/x", "https://faa.gov/x", false},
		{"nofollow absolute", "/2023/", "!https://example.com", "https://example.com", true},
		{"relative to page", "/2023/", "papers.csv", "/2023/papers.csv", false},
		{"parent relative", "/2023/program/", "../keynotes/", "/2023/keynotes/", false},
		{"rooted path", "/2023/", "/sponsors/", "/sponsors/", false},
		{"mailto kept", "/", "mailto:chair@faa.gov", "mailto:chair@faa.gov", false},
		{"drive link", "/2023/", "/seminarContent/2023/talk.pdf",
			"https://drive.google.com/file/d/abc123/view?usp=sharing", false},
		{"nested drive link", "/2023/", "!/archive/seminarContent/2023/talk.pdf",
			"https://drive.google.com/file/d/abc123/view?usp=sharing", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, nofollow, err := r.RewriteLink(ctx, tt.page, tt.link)
			if err != nil {
				t.Fatalf("RewriteLink() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RewriteLink() = %q, want %q", got, tt.want)
			}
			if nofollow != tt.wantNofollow {
				t.Errorf("nofollow = %v, want %v", nofollow, tt.wantNofollow)
			}
		})
	}
}

func TestRewriteLink_NotInDrive(t *testing.T) {
	_, _, err := testRenderer().RewriteLink(context.Background(), "/", "/seminarContent/missing.pdf")
	if !errors.Is(err, drive.ErrNotInDrive) {
		t.Errorf("RewriteLink() error = %v, want ErrNotInDrive", err)
	}
}

func TestRender(t *testing.T) {
	r := testRenderer()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain link", "[Home](/)", `<a href="/">Home</a>`},
		{"title", `[Papers](papers.csv "All <papers>")`, `<a href="/2023/papers.csv" title="All &lt;papers&gt;">Papers</a>`},
		{"nofollow", "[Ext](!https://example.com)", `<a href="https://example.com" rel="nofollow">Ext</a>`},
		{"nofollow with title", `[Ext](!https://example.com "t")`, `<a href="https://example.com" title="t" rel="nofollow">Ext</a>`},
		{"escaped href", "[Q](/search?a=1&b=2)", `<a href="/search?a=1&amp;b=2">Q</a>`},
		{"emphasis in text", "[*Bold* move](/x)", `<a href="/x"><em>Bold</em> move</a>`},
		{"drive", "[Talk](/seminarContent/2023/talk.pdf)",
			`<a href="https://drive.google.com/file/d/abc123/view?usp=sharing">Talk</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(context.Background(), "/2023/", tt.src)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !strings.Contains(string(out), tt.want) {
				t.Errorf("Render() = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestRender_DriveError(t *testing.T) {
	_, err := testRenderer().Render(context.Background(), "/", "[x](/seminarContent/nope.pdf)")
	if !errors.Is(err, drive.ErrNotInDrive) {
		t.Errorf("Render() error = %v, want ErrNotInDrive", err)
	}
}

func TestRender_NoResolver(t *testing.T) {
	out, err := New(nil).Render(context.Background(), "/", "[x](/seminarContent/nope.pdf)")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(out), `href="/seminarContent/nope.pdf"`) {
		t.Errorf("Render() = %q", out)
	}
}
