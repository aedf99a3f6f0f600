// Package preview renders dropped snippets with goldmark so clients can show
// what will be inserted before committing it.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"mddrop/internal/locator"
)

// Link is a link or image reference found in rendered markdown.
type Link struct {
	Image       bool
	Label       string
	Destination string
	// Target is the absolute locator Destination points at, when known.
	Target string
}

// Renderer converts markdown snippets to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM extensions enabled. Unsafe rendering is
// on because dropped resources are usually file: URIs, which the default
// renderer blanks out.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
		),
	}
}

// HTML renders markdown to an HTML fragment.
func (r *Renderer) HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Links parses markdown and returns every link and image in document order.
func (r *Renderer) Links(markdown string) []Link {
	source := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(source))

	var links []Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Link:
			links = append(links, Link{
				Label:       nodeText(node, source),
				Destination: string(node.Destination),
			})
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			links = append(links, Link{
				Image:       true,
				Label:       nodeText(node, source),
				Destination: string(node.Destination),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return links
}

// ResolveTargets sets Target on every link. Relative destinations are resolved
// against base; without a base only absolute destinations get a target.
func ResolveTargets(links []Link, base locator.Locator, hasBase bool) {
	for i := range links {
		if abs, ok := locator.Parse(links[i].Destination); ok {
			links[i].Target = abs.String()
			continue
		}
		if !hasBase {
			continue
		}
		if abs, ok := base.Resolve(links[i].Destination); ok {
			links[i].Target = abs.String()
		}
	}
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
