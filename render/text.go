package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ndiff/compare/collab"
	"github.com/ndiff/compare/model"
)

// Per-row-kind styles for the side-by-side text view.
var (
	lineNoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	contextStyle  = lipgloss.NewStyle()
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	movedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	changedWordHL = lipgloss.NewStyle().Background(lipgloss.Color("58"))
	emptyColStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Text renders pairs as a side-by-side ANSI terminal view of ed's two
// documents, styling each side by the marker mask the engine painted onto
// it and giving the byte ranges recorded for word-level changes a
// background colour.
func Text(ed *collab.MemEditor, pairs []model.AlignmentPair, width int) string {
	if width <= 0 {
		width = 160
	}
	colWidth := (width - 8) / 2

	var rows []string
	for _, p := range pairs {
		left := renderSide(ed, model.Main, p.Main, colWidth)
		right := renderSide(ed, model.Sub, p.Sub, colWidth)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, lineNoStyle.Render(" │ "), right))
	}
	return strings.Join(rows, "\n")
}

func renderSide(ed *collab.MemEditor, doc model.DocID, side model.AlignmentSide, width int) string {
	noWidth := 5
	if side.Line < 0 {
		blank := strings.Repeat(" ", noWidth+1+width)
		return emptyColStyle.Render(blank)
	}

	line := ed.Lines(doc)[side.Line]
	text := styledLine(line, lineByteRanges(ed, doc, side.Line), styleFor(side.DiffMask))
	no := lineNoStyle.Render(fmt.Sprintf("%*s ", noWidth, strconv.Itoa(side.Line+1)))
	cell := lipgloss.NewStyle().MaxWidth(width).Render(text)
	return no + cell
}

func styleFor(mask model.MarkerMask) lipgloss.Style {
	switch {
	case mask&(model.MarkerMovedLine|model.MarkerMovedBegin|model.MarkerMovedMid|model.MarkerMovedEnd) != 0:
		return movedStyle
	case mask&(model.MarkerAdded|model.MarkerAddedLocal) != 0:
		return addedStyle
	case mask&(model.MarkerRemoved|model.MarkerRemovedLocal) != 0:
		return removedStyle
	default:
		return contextStyle
	}
}

// styledLine applies style to line as a whole, then overlays changedWordHL
// on top of each byte range within it.
func styledLine(line string, ranges []collab.ByteRangePaint, style lipgloss.Style) string {
	if len(ranges) == 0 {
		return style.Render(line)
	}

	var sb strings.Builder
	pos := 0
	for _, r := range ranges {
		if r.Offset > pos {
			sb.WriteString(style.Render(line[pos:r.Offset]))
		}
		end := r.Offset + r.Length
		if end > len(line) {
			end = len(line)
		}
		sb.WriteString(style.Inherit(changedWordHL).Render(line[r.Offset:end]))
		pos = end
	}
	if pos < len(line) {
		sb.WriteString(style.Render(line[pos:]))
	}
	return sb.String()
}

// lineByteRanges returns the byte ranges PaintByteRange recorded for line,
// translated from ed's absolute document offsets to offsets local to the
// line, by intersecting against LineRange's own half-open byte range.
func lineByteRanges(ed *collab.MemEditor, doc model.DocID, line int) []collab.ByteRangePaint {
	start, end := ed.LineRange(doc, line)
	var out []collab.ByteRangePaint
	for _, br := range ed.ByteRanges[doc] {
		if br.Offset >= start && br.Offset < end {
			out = append(out, collab.ByteRangePaint{Offset: br.Offset - start, Length: br.Length})
		}
	}
	return out
}
