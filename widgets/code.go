package widgets

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-virtual/backend"
)

const defaultCodeStyle = "catppuccin-mocha"

// CodeRenderer renders items as syntax highlighted source.
type CodeRenderer[T any] struct {
	Source func(item T) string
	lexer  chroma.Lexer
	style  *chroma.Style
}

// NewCodeRenderer creates a renderer for the named language. An empty or
// unknown language falls back to content analysis, then plain text.
func NewCodeRenderer[T any](language, styleName string, source func(item T) string) *CodeRenderer[T] {
	if styleName == "" {
		styleName = defaultCodeStyle
	}
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	return &CodeRenderer[T]{Source: source, lexer: lexer, style: styles.Get(styleName)}
}

// Lines tokenizes the item and wraps it to width.
func (r *CodeRenderer[T]) Lines(item T, index int, width int) []Line {
	if r.Source == nil {
		return nil
	}
	src := r.Source(item)
	lexer := r.lexer
	if lexer == nil {
		if lexer = lexers.Analyse(src); lexer == nil {
			lexer = lexers.Fallback
		}
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, src)
	if err != nil {
		return WrapSpans([]Span{{Text: src, Style: backend.DefaultStyle()}}, width)
	}
	base := r.style.Get(chroma.Text).Colour
	spans := make([]Span, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		spans = append(spans, Span{Text: tok.Value, Style: tokenStyle(r.style.Get(tok.Type), base)})
	}
	lines := WrapSpans(spans, width)
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	return lines
}

// tokenStyle maps a chroma entry to a cell style. Tokens in the base text
// colour keep the terminal default foreground.
func tokenStyle(entry chroma.StyleEntry, base chroma.Colour) backend.Style {
	style := backend.DefaultStyle()
	if entry.Colour.IsSet() && entry.Colour != base {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}

var _ ItemRenderer[string] = (*CodeRenderer[string])(nil)
