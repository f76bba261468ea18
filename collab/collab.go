// Package collab defines the external collaborator interfaces the engine
// talks to instead of owning document storage or progress UI itself; these
// are injected rather than reached for as globals. It also provides an
// in-memory Editor implementation used by the CLI and by the engine's own
// tests.
package collab

import "github.com/ndiff/compare/model"

// Editor is the document collaborator: it exposes the two compared documents
// for reading and accepts the marker/byte-range/annotation side effects the
// orchestrator produces. All byte offsets are document-local.
type Editor interface {
	LineCount(doc model.DocID) int
	// LineRange returns the half-open byte range of the given line,
	// excluding its line terminator.
	LineRange(doc model.DocID, line int) (start, end int)
	Bytes(doc model.DocID, start, end int) []byte

	PaintLineMarker(doc model.DocID, line int, mask model.MarkerMask)
	PaintByteRange(doc model.DocID, offset, length int)
	InsertTextAtOrigin(doc model.DocID, text string)
	SetSavePoint(doc model.DocID)
	IsModified(doc model.DocID) bool
	// WithWriteEnabled runs fn with write access to doc acquired, releasing
	// it on every exit path including a panic inside fn.
	WithWriteEnabled(doc model.DocID, fn func())
}

// Progress is the progress collaborator: it reports work size, observes
// cancellation, and brackets the compare with a title.
type Progress interface {
	Open(title string)
	Close()
	SetMaxCount(n int)
	// Advance reports one unit of progress within the current phase. It
	// returns false if the user cancelled.
	Advance() bool
	// NextPhase reports a phase boundary. It returns false if the user
	// cancelled.
	NextPhase() bool
}

// NoopProgress never reports cancellation. Useful for callers that don't
// want to wire up a real progress UI.
type NoopProgress struct{}

func (NoopProgress) Open(string)     {}
func (NoopProgress) Close()          {}
func (NoopProgress) SetMaxCount(int) {}
func (NoopProgress) Advance() bool   { return true }
func (NoopProgress) NextPhase() bool { return true }
