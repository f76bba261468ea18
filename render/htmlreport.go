package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ndiff/compare/collab"
	"github.com/ndiff/compare/model"
)

// reportTemplate is the side-by-side HTML report, executed against a
// struct of pre-rendered content.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: monospace; background: #1e1e1e; color: #ddd; }
table { border-collapse: collapse; width: 100%; }
td { vertical-align: top; padding: 0 .5em; white-space: pre; }
td.no { color: #888; text-align: right; user-select: none; }
tr.added { background: #1c3a1c; }
tr.removed { background: #3a1c1c; }
tr.moved { background: #1c3a3a; }
.hl-kw { color: #c586c0; }
.hl-fn { color: #dcdcaa; }
.hl-str { color: #ce9178; }
.hl-num { color: #b5cea8; }
.hl-cm { color: #6a9955; }
mark { background: #5a5a00; color: inherit; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Result: {{.Result}}</p>
<table>
<tr><th colspan="2">{{.MainLabel}}</th><th colspan="2">{{.SubLabel}}</th></tr>
{{range .Rows}}<tr class="{{.Class}}">
<td class="no">{{.MainNo}}</td><td>{{.MainHTML}}</td>
<td class="no">{{.SubNo}}</td><td>{{.SubHTML}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

// ReportOptions configures HTMLReport.
type ReportOptions struct {
	Title              string
	MainLabel, SubLabel string
	Highlight          []HighlightOption
}

type reportRow struct {
	Class             string
	MainNo, SubNo     string
	MainHTML, SubHTML template.HTML
}

// HTMLReport writes a standalone side-by-side HTML report of pairs over
// ed's two documents to w, syntax-highlighting each line via Highlight and
// marking word-level changes recorded as byte ranges with <mark>.
func HTMLReport(w io.Writer, ed *collab.MemEditor, result model.Result, pairs []model.AlignmentPair, opts ReportOptions) error {
	mainHTML, err := highlightDoc(ed, model.Main, pairs, opts.Highlight)
	if err != nil {
		return fmt.Errorf("highlighting main document: %w", err)
	}
	subHTML, err := highlightDoc(ed, model.Sub, pairs, opts.Highlight)
	if err != nil {
		return fmt.Errorf("highlighting sub document: %w", err)
	}

	rows := make([]reportRow, len(pairs))
	for i, p := range pairs {
		rows[i] = reportRow{
			Class:    rowClass(p),
			MainNo:   lineLabel(p.Main.Line),
			SubNo:    lineLabel(p.Sub.Line),
			MainHTML: sideHTML(p.Main, mainHTML),
			SubHTML:  sideHTML(p.Sub, subHTML),
		}
	}

	title := opts.Title
	if title == "" {
		title = "compare report"
	}
	mainLabel, subLabel := opts.MainLabel, opts.SubLabel
	if mainLabel == "" {
		mainLabel = "main"
	}
	if subLabel == "" {
		subLabel = "sub"
	}

	return reportTemplate.Execute(w, struct {
		Title, MainLabel, SubLabel string
		Result                     model.Result
		Rows                       []reportRow
	}{title, mainLabel, subLabel, result, rows})
}

func highlightDoc(ed *collab.MemEditor, doc model.DocID, pairs []model.AlignmentPair, opts []HighlightOption) ([]template.HTML, error) {
	lines := ed.Lines(doc)
	highlighted, err := Highlight(lines, opts...)
	if err != nil {
		return nil, err
	}
	for i := range highlighted {
		if ranges := lineByteRanges(ed, doc, i); len(ranges) > 0 {
			// A line with word-level changes loses syntax coloring in favor
			// of <mark> highlighting those changes; combining both would
			// require reconciling chroma's span boundaries against
			// arbitrary byte ranges, which the diffed word ranges here
			// don't need since they're typically short edits within a
			// single token.
			highlighted[i] = template.HTML(markRanges(ranges, lines[i]))
		}
	}
	return highlighted, nil
}

// markRanges escapes line and wraps each byte range within it in <mark>.
func markRanges(ranges []collab.ByteRangePaint, line string) string {
	var out []byte
	pos := 0
	for _, r := range ranges {
		end := r.Offset + r.Length
		if end > len(line) {
			end = len(line)
		}
		out = append(out, []byte(template.HTMLEscapeString(line[pos:r.Offset]))...)
		out = append(out, []byte("<mark>")...)
		out = append(out, []byte(template.HTMLEscapeString(line[r.Offset:end]))...)
		out = append(out, []byte("</mark>")...)
		pos = end
	}
	out = append(out, []byte(template.HTMLEscapeString(line[pos:]))...)
	return string(out)
}

func sideHTML(side model.AlignmentSide, lines []template.HTML) template.HTML {
	if side.Line < 0 || side.Line >= len(lines) {
		return ""
	}
	return lines[side.Line]
}

func lineLabel(line int) string {
	if line < 0 {
		return ""
	}
	return fmt.Sprintf("%d", line+1)
}

func rowClass(p model.AlignmentPair) string {
	mask := p.Main.DiffMask | p.Sub.DiffMask
	switch {
	case mask&(model.MarkerMovedLine|model.MarkerMovedBegin|model.MarkerMovedMid|model.MarkerMovedEnd) != 0:
		return "moved"
	case p.Main.Line < 0:
		return "added"
	case p.Sub.Line < 0:
		return "removed"
	default:
		return ""
	}
}
