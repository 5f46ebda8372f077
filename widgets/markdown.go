package widgets

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/odvcencio/furry-virtual/backend"
)

// MarkdownTheme styles markdown elements.
type MarkdownTheme struct {
	Text     backend.Style
	Heading  backend.Style
	Emphasis backend.Style
	Strong   backend.Style
	Code     backend.Style
	Link     backend.Style
	Bullet   string
}

// DefaultMarkdownTheme returns the default markdown styles.
func DefaultMarkdownTheme() MarkdownTheme {
	base := backend.DefaultStyle()
	return MarkdownTheme{
		Text:     base,
		Heading:  base.Bold(true),
		Emphasis: base.Italic(true),
		Strong:   base.Bold(true),
		Code:     base.Dim(true),
		Link:     base.Underline(true),
		Bullet:   "• ",
	}
}

// MarkdownRenderer renders items as markdown, one item per list row.
type MarkdownRenderer[T any] struct {
	Source func(item T) string
	Theme  MarkdownTheme
	md     goldmark.Markdown
}

// NewMarkdownRenderer creates a renderer that reads markdown via source.
func NewMarkdownRenderer[T any](source func(item T) string) *MarkdownRenderer[T] {
	return &MarkdownRenderer[T]{
		Source: source,
		Theme:  DefaultMarkdownTheme(),
		md:     goldmark.New(),
	}
}

// Lines parses the item's markdown and wraps it to width.
func (r *MarkdownRenderer[T]) Lines(item T, index int, width int) []Line {
	if r.Source == nil {
		return nil
	}
	src := []byte(r.Source(item))
	if r.md == nil {
		r.md = goldmark.New()
	}
	doc := r.md.Parser().Parse(text.NewReader(src))
	w := &mdWriter{src: src, theme: r.Theme}
	w.blocks(doc)
	var lines []Line
	for i, block := range w.out {
		if i > 0 && block.gap {
			lines = append(lines, nil)
		}
		lines = append(lines, WrapSpans(block.spans, width)...)
	}
	if len(lines) == 0 {
		lines = []Line{nil}
	}
	return lines
}

type mdBlock struct {
	spans []Span
	gap   bool
}

type mdWriter struct {
	src   []byte
	theme MarkdownTheme
	out   []mdBlock
}

func (w *mdWriter) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			prefix := strings.Repeat("#", node.Level) + " "
			spans := append([]Span{{Text: prefix, Style: w.theme.Heading}}, w.inline(node, w.theme.Heading)...)
			w.out = append(w.out, mdBlock{spans: spans, gap: true})
		case *ast.Paragraph:
			w.out = append(w.out, mdBlock{spans: w.inline(node, w.theme.Text), gap: true})
		case *ast.TextBlock:
			w.out = append(w.out, mdBlock{spans: w.inline(node, w.theme.Text)})
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				start := len(w.out)
				w.blocks(item)
				if start < len(w.out) {
					first := &w.out[start]
					first.spans = append([]Span{{Text: w.theme.Bullet, Style: w.theme.Text}}, first.spans...)
					first.gap = false
				}
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			w.out = append(w.out, mdBlock{spans: []Span{{Text: w.rawLines(n), Style: w.theme.Code}}, gap: true})
		case *ast.ThematicBreak:
			w.out = append(w.out, mdBlock{spans: []Span{{Text: "───", Style: w.theme.Text}}, gap: true})
		default:
			w.blocks(n)
		}
	}
}

func (w *mdWriter) rawLines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (w *mdWriter) inline(parent ast.Node, style backend.Style) []Span {
	var spans []Span
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			spans = append(spans, Span{Text: string(node.Segment.Value(w.src)), Style: style})
			if node.SoftLineBreak() {
				spans = append(spans, Span{Text: " ", Style: style})
			}
			if node.HardLineBreak() {
				spans = append(spans, Span{Text: "\n", Style: style})
			}
		case *ast.String:
			spans = append(spans, Span{Text: string(node.Value), Style: style})
		case *ast.CodeSpan:
			var sb strings.Builder
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					sb.Write(t.Segment.Value(w.src))
				}
			}
			spans = append(spans, Span{Text: sb.String(), Style: w.theme.Code})
		case *ast.Emphasis:
			next := w.theme.Emphasis
			if node.Level >= 2 {
				next = w.theme.Strong
			}
			spans = append(spans, w.inline(node, next)...)
		case *ast.Link:
			spans = append(spans, w.inline(node, w.theme.Link)...)
		case *ast.AutoLink:
			spans = append(spans, Span{Text: string(node.URL(w.src)), Style: w.theme.Link})
		default:
			spans = append(spans, w.inline(n, style)...)
		}
	}
	return spans
}

var _ ItemRenderer[string] = (*MarkdownRenderer[string])(nil)
