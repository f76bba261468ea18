// Package model defines the data types shared by every phase of the compare
// engine: sections, documents, words, blocks and their match metadata, and
// the alignment rows the orchestrator produces for the editor collaborator.
//
// Blocks reference each other (a replaced IN_A block's match partner, a
// moved run's alternate sources and targets) but all of those references are
// stable indices into the owning []BlockDiff slice rather than pointers, so
// that a BlockDiff vector remains a single ordinary value with no internal
// aliasing to worry about (see DESIGN.md's note on borrow relationships).
package model

import "fmt"

// DocID identifies which of the two compared documents a value belongs to.
type DocID int

const (
	Main DocID = iota
	Sub
)

func (d DocID) String() string {
	if d == Sub {
		return "sub"
	}
	return "main"
}

// Section is a half-open range of lines within a document. Length 0 means
// empty; a negative length is invalid and never produced by this package.
type Section struct {
	Offset int
	Length int
}

func (s Section) End() int { return s.Offset + s.Length }

func (s Section) Empty() bool { return s.Length <= 0 }

// DocInput describes one document to compare and how its differences should
// be painted by the editor collaborator.
type DocInput struct {
	ID        DocID
	Section   Section
	PaintMask MarkerMask
}

// WordClass is the byte classification used by the tokenizer.
type WordClass int

const (
	Space WordClass = iota
	Alnum
	Other
)

// Word is a maximal run of bytes on one line sharing a single WordClass.
// Equality between words is defined solely by Hash.
type Word struct {
	Class      WordClass
	LineIndex  int
	ByteOffset int
	ByteLength int
	Hash       uint64
}

// LineChange is a changed line within a paired block, together with the
// byte ranges within that line that differ from its partner.
type LineChange struct {
	LineIndex int
	Changes   []Section
}

// Match is a run of lines within a block that is matched to runs elsewhere.
// IsMoved distinguishes a genuine relocation from mere duplication.
type Match struct {
	Section Section
	IsMoved bool
}

// noMatchPartner marks a BlockInfo with no paired block.
const noMatchPartner = -1

// BlockInfo is auxiliary data attached to one BlockDiff. It is extended
// across three passes: construction (empty), move detection (Matches),
// and block pairing (MatchPartner, ChangedLines).
type BlockInfo struct {
	// MatchPartner is a stable index into the owning []BlockDiff slice, or
	// noMatchPartner if this block has no partner.
	MatchPartner int
	ChangedLines []LineChange
	Matches      []Match
}

func NewBlockInfo() BlockInfo {
	return BlockInfo{MatchPartner: noMatchPartner}
}

func (bi *BlockInfo) HasMatchPartner() bool { return bi.MatchPartner != noMatchPartner }

// MatchAt returns the length and IsMoved flag of the Match covering line
// (relative to the block's own offset), or (0, false) if line isn't covered
// by any recorded match. Matches are scanned linearly in recording order,
// mirroring the original engine's matchedSection lookup.
func (bi *BlockInfo) MatchAt(line int) (length int, isMoved bool) {
	for _, m := range bi.Matches {
		if line >= m.Section.Offset && line < m.Section.Offset+m.Section.Length {
			return m.Section.Length, m.IsMoved
		}
	}
	return 0, false
}

// BlockKind classifies a BlockDiff.
type BlockKind int

//go:generate go run golang.org/x/tools/cmd/stringer -type=BlockKind
const (
	BlockMatch BlockKind = iota
	BlockInA
	BlockInB
)

// BlockDiff is one maximal same-kind run produced by the line-level LCS.
// Offset is relative to the corresponding document's compared section
// origin at construction time; the orchestrator rebases it into absolute
// document coordinates once move detection and the leading-line workaround
// have run.
type BlockDiff struct {
	Kind   BlockKind
	Offset int
	Length int
	Info   BlockInfo
}

func (b BlockDiff) End() int { return b.Offset + b.Length }

// AlignmentSide is one document's half of an AlignmentPair.
type AlignmentSide struct {
	Line     int
	DiffMask MarkerMask
}

// AlignmentPair is one row of the final alignment table, mapping a line
// position in each document to the marker class that should be painted
// there.
type AlignmentPair struct {
	Main AlignmentSide
	Sub  AlignmentSide
}

// MarkerMask is an opaque bitmask communicated to the editor collaborator
// identifying how a line or byte range should be visually classified. The
// taxonomy below gives these bits concrete values for this module's own
// in-memory collaborator and renderers; a real editor integration would
// translate them to its own marker IDs.
type MarkerMask uint32

const (
	MarkerAdded MarkerMask = 1 << iota
	MarkerRemoved
	MarkerAddedLocal
	MarkerRemovedLocal
	MarkerMovedLine
	MarkerMovedBegin
	MarkerMovedMid
	MarkerMovedEnd
	MarkerChanged
)

func (m MarkerMask) String() string {
	if m == 0 {
		return "none"
	}
	names := []struct {
		bit  MarkerMask
		name string
	}{
		{MarkerAdded, "ADDED"},
		{MarkerRemoved, "REMOVED"},
		{MarkerAddedLocal, "ADDED_LOCAL"},
		{MarkerRemovedLocal, "REMOVED_LOCAL"},
		{MarkerMovedLine, "MOVED_LINE"},
		{MarkerMovedBegin, "MOVED_BEGIN"},
		{MarkerMovedMid, "MOVED_MID"},
		{MarkerMovedEnd, "MOVED_END"},
		{MarkerChanged, "CHANGED"},
	}
	s := ""
	for _, n := range names {
		if m&n.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return fmt.Sprintf("MarkerMask(%#x)", uint32(m))
	}
	return s
}

// Settings are the user-visible compare options.
type Settings struct {
	IgnoreCase    bool
	IgnoreSpaces  bool
	DetectMoves   bool
	OldFileViewId DocID
}

// DefaultSettings mirrors the engine's zero-value behavior: case and
// whitespace are significant, move detection is on, and doc1 (Main) is
// treated as the old file.
func DefaultSettings() Settings {
	return Settings{
		IgnoreCase:    false,
		IgnoreSpaces:  false,
		DetectMoves:   true,
		OldFileViewId: Main,
	}
}

// Result is the outcome of a compare or find-unique run.
type Result int

const (
	ResultMatch Result = iota
	ResultMismatch
	ResultCancelled
	ResultError
)

func (r Result) String() string {
	switch r {
	case ResultMatch:
		return "MATCH"
	case ResultMismatch:
		return "MISMATCH"
	case ResultCancelled:
		return "CANCELLED"
	default:
		return "ERROR"
	}
}
