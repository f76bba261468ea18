// Package render turns an already-computed compare result (model.Result,
// []model.AlignmentPair, and the two documents' lines) into human-facing
// output: ANSI terminal text, syntax-highlighted HTML, or a full standalone
// HTML report. It never reaches into editor state or recomputes a diff —
// the engine package owns that.
package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// hlStyle maps chroma token categories to the CSS classes the HTML report's
// stylesheet defines.
var hlStyle = map[chroma.TokenType]string{
	chroma.Keyword:        "hl-kw",
	chroma.KeywordType:    "hl-kw",
	chroma.NameClass:      "hl-kw",
	chroma.NameFunction:   "hl-fn",
	chroma.NameBuiltin:    "hl-fn",
	chroma.LiteralString:  "hl-str",
	chroma.LiteralNumber:  "hl-num",
	chroma.Comment:        "hl-cm",
	chroma.CommentPreproc: "hl-cm",
	chroma.OperatorWord:   "hl-kw",
}

// HighlightOption configures a lexer lookup for Highlight.
type HighlightOption func(*highlighter)

// Lang selects a chroma lexer by language name (e.g. "go", "python").
func Lang(lang string) HighlightOption {
	return func(h *highlighter) { h.lexer = lexers.Get(lang) }
}

// LangFromFilename selects a chroma lexer by matching filename or extension.
func LangFromFilename(filename string) HighlightOption {
	return func(h *highlighter) { h.lexer = lexers.Match(filename) }
}

type highlighter struct {
	lexer chroma.Lexer
}

func newHighlighter(opts []HighlightOption) *highlighter {
	h := &highlighter{}
	for _, opt := range opts {
		opt(h)
	}
	if h.lexer == nil {
		h.lexer = lexers.Fallback
	}
	h.lexer = chroma.Coalesce(h.lexer)
	return h
}

// Highlight lexes each of lines independently and returns its syntax-
// highlighted HTML fragment, safe to drop directly into a <pre> or <td> in
// the HTML report.
func Highlight(lines []string, opts ...HighlightOption) ([]template.HTML, error) {
	h := newHighlighter(opts)

	out := make([]template.HTML, len(lines))
	for i, line := range lines {
		it, err := h.lexer.Tokenise(nil, line)
		if err != nil {
			return nil, fmt.Errorf("highlighting line %d: %w", i+1, err)
		}
		out[i] = template.HTML(renderTokens(it.Tokens()))
	}
	return out, nil
}

func renderTokens(tokens []chroma.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		class := classFor(tok.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(tok.Value))
		if class != "" {
			sb.WriteString("</span>")
		}
	}
	return sb.String()
}

func classFor(t chroma.TokenType) string {
	if s, ok := hlStyle[t]; ok {
		return s
	}
	if s, ok := hlStyle[t.SubCategory()]; ok {
		return s
	}
	if s, ok := hlStyle[t.Category()]; ok {
		return s
	}
	return ""
}
