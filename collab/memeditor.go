package collab

import (
	"bytes"

	"github.com/ndiff/compare/model"
)

// ByteRangePaint records one PaintByteRange call for inspection in tests.
type ByteRangePaint struct {
	Offset, Length int
}

// MemEditor is an in-memory Editor over two plain line slices. It backs the
// CLI's compare and watch commands and the engine's own tests;
// a real editor integration would implement Editor against its own buffer
// and annotation APIs instead.
type MemEditor struct {
	lines     [2][][]byte
	modified  [2]bool
	writeNest [2]int

	LineMarkers [2]map[int]model.MarkerMask
	ByteRanges  [2][]ByteRangePaint
}

// NewMemEditor builds a MemEditor from each document's lines, given without
// their line terminators.
func NewMemEditor(mainLines, subLines []string) *MemEditor {
	e := &MemEditor{}
	e.lines[model.Main] = toByteLines(mainLines)
	e.lines[model.Sub] = toByteLines(subLines)
	e.LineMarkers[model.Main] = make(map[int]model.MarkerMask)
	e.LineMarkers[model.Sub] = make(map[int]model.MarkerMask)
	return e
}

func toByteLines(lines []string) [][]byte {
	out := make([][]byte, len(lines))
	for i, l := range lines {
		out[i] = []byte(l)
	}
	return out
}

func (e *MemEditor) LineCount(doc model.DocID) int { return len(e.lines[doc]) }

func (e *MemEditor) LineRange(doc model.DocID, line int) (start, end int) {
	for i := 0; i < line; i++ {
		start += len(e.lines[doc][i]) + 1
	}
	end = start + len(e.lines[doc][line])
	return start, end
}

func (e *MemEditor) Bytes(doc model.DocID, start, end int) []byte {
	return e.fullText(doc)[start:end]
}

func (e *MemEditor) fullText(doc model.DocID) []byte {
	var buf []byte
	for i, l := range e.lines[doc] {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, l...)
	}
	return buf
}

func (e *MemEditor) PaintLineMarker(doc model.DocID, line int, mask model.MarkerMask) {
	e.LineMarkers[doc][line] |= mask
}

func (e *MemEditor) PaintByteRange(doc model.DocID, offset, length int) {
	e.ByteRanges[doc] = append(e.ByteRanges[doc], ByteRangePaint{offset, length})
}

func (e *MemEditor) InsertTextAtOrigin(doc model.DocID, text string) {
	e.modified[doc] = true
	if text == "" {
		return
	}
	full := append([]byte(text), e.fullText(doc)...)
	e.lines[doc] = bytes.Split(full, []byte("\n"))
}

func (e *MemEditor) SetSavePoint(doc model.DocID) { e.modified[doc] = false }

func (e *MemEditor) IsModified(doc model.DocID) bool { return e.modified[doc] }

func (e *MemEditor) WithWriteEnabled(doc model.DocID, fn func()) {
	e.writeNest[doc]++
	defer func() { e.writeNest[doc]-- }()
	fn()
}

// Lines returns doc's current lines as strings, for test assertions.
func (e *MemEditor) Lines(doc model.DocID) []string {
	out := make([]string, len(e.lines[doc]))
	for i, l := range e.lines[doc] {
		out[i] = string(l)
	}
	return out
}
