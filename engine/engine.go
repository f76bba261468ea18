// Package engine implements the compare orchestrator: it drives the
// hashing, line-level diff, move detection, and block-pairing phases over
// two documents reached through a collab.Editor and reports the result
// through a collab.Progress, producing the alignment table a renderer or
// editor integration paints.
package engine

import (
	"errors"

	"github.com/ndiff/compare/blockpair"
	"github.com/ndiff/compare/collab"
	"github.com/ndiff/compare/hashing"
	"github.com/ndiff/compare/lcs"
	"github.com/ndiff/compare/model"
	"github.com/ndiff/compare/move"
	"github.com/ndiff/compare/token"
)

// ErrCancelled and ErrResourceExhausted mirror lcs's own sentinels; Run
// returns one of them wrapped whenever DiffCalc aborts for that reason.
var (
	ErrCancelled         = lcs.ErrCancelled
	ErrResourceExhausted = lcs.ErrResourceExhausted
)

// cancelCadence is how many outer-loop iterations of the line-level diff
// elapse between progress-advance calls.
const cancelCadence = 500

// doc bundles one document's resolved view for the duration of a compare.
// input.ID and input.PaintMask travel with the value across the doc1/doc2
// swap in step 3, so collaborator calls and marker decisions stay correct
// without any separate bookkeeping of which physical document is which.
type doc struct {
	input  model.DocInput
	lines  [][]byte
	hashes []uint64
}

// Run executes one compare of main against sub under settings, reading and
// annotating documents through ed and reporting progress through prog. It
// returns the alignment table for MATCH (empty) and MISMATCH results; for
// CANCELLED and ERROR the slice is nil and err is non-nil.
func Run(ed collab.Editor, prog collab.Progress, main, sub model.DocInput, settings model.Settings) (model.Result, []model.AlignmentPair, error) {
	prog.Open("Compare")
	defer prog.Close()

	// selectionCompare must be read before section resolution fills in
	// whole-document lengths.
	selectionCompare := main.Section.Length != 0 || sub.Section.Length != 0

	d1 := loadDoc(ed, main, settings)
	if !prog.NextPhase() {
		return model.ResultCancelled, nil, ErrCancelled
	}
	d2 := loadDoc(ed, sub, settings)
	if !prog.NextPhase() {
		return model.ResultCancelled, nil, ErrCancelled
	}

	if len(d1.hashes) < len(d2.hashes) {
		d1, d2 = d2, d1
	}

	blocks, err := diffLines(d1, d2, prog)
	if err != nil {
		if errors.Is(err, lcs.ErrCancelled) {
			return model.ResultCancelled, nil, err
		}
		return model.ResultError, nil, err
	}
	if !prog.NextPhase() {
		return model.ResultCancelled, nil, ErrCancelled
	}

	if len(blocks) == 1 && blocks[0].Kind == model.BlockMatch {
		return model.ResultMatch, nil, nil
	}

	if settings.DetectMoves {
		move.Find(blocks, d1.hashes, d2.hashes)
	}
	if !prog.NextPhase() {
		return model.ResultCancelled, nil, ErrCancelled
	}

	// Tokenize and pair blocks while offsets are still local to each
	// document's compared range: BlockPairComparer only needs line-local
	// indices, so running it before the workaround/rebase below (which
	// only ever touch Offset) is equivalent and avoids re-deriving a
	// local index from an absolute one.
	pairBlocks(blocks, d1, d2, settings)
	if !prog.NextPhase() {
		return model.ResultCancelled, nil, ErrCancelled
	}

	shifted := applyLeadingLineWorkaround(ed, d1, d2, blocks)
	rebaseOffsets(blocks, d1.input.Section.Offset, d2.input.Section.Offset)

	pairs := walkBlocks(ed, blocks, d1, d2, shifted)
	if selectionCompare {
		pairs = append(pairs, model.AlignmentPair{})
	}

	return model.ResultMismatch, pairs, nil
}

// loadDoc resolves input's section (filling in the whole document when
// Section.Length is 0), reads its raw lines, and hashes them, trimming a
// single trailing blank-hash line — but only for a whole-document section,
// never an explicit caller-bounded one.
func loadDoc(ed collab.Editor, input model.DocInput, settings model.Settings) doc {
	whole := input.Section.Length == 0
	section := input.Section
	if whole {
		section = model.Section{Offset: 0, Length: ed.LineCount(input.ID)}
	}

	lines := make([][]byte, section.Length)
	for i := 0; i < section.Length; i++ {
		start, end := ed.LineRange(input.ID, section.Offset+i)
		lines[i] = ed.Bytes(input.ID, start, end)
	}

	hashes := hashing.Lines(lines, settings.IgnoreCase, settings.IgnoreSpaces)
	if whole && len(hashes) > 0 && hashes[len(hashes)-1] == hashing.Seed {
		hashes = hashes[:len(hashes)-1]
		lines = lines[:len(lines)-1]
		section.Length--
	}

	input.Section = section
	return doc{input: input, lines: lines, hashes: hashes}
}

func diffLines(d1, d2 doc, prog collab.Progress) ([]model.BlockDiff, error) {
	n := 0
	spans, err := lcs.Diff(d1.hashes, d2.hashes, identity, lcs.Limits{
		Cancel: func() bool {
			n++
			if n%cancelCadence != 0 {
				return false
			}
			return !prog.Advance()
		},
	})
	if err != nil {
		return nil, err
	}

	blocks := make([]model.BlockDiff, len(spans))
	for i, s := range spans {
		blocks[i] = model.BlockDiff{Kind: blockKind(s.Kind), Offset: s.Offset, Length: s.Length, Info: model.NewBlockInfo()}
	}
	return blocks, nil
}

func identity(h uint64) uint64 { return h }

func blockKind(op lcs.Op) model.BlockKind {
	switch op {
	case lcs.Match:
		return model.BlockMatch
	case lcs.InA:
		return model.BlockInA
	default:
		return model.BlockInB
	}
}

// pairBlocks runs word-level pairing on every IN_B block immediately
// preceded by an IN_A block.
func pairBlocks(blocks []model.BlockDiff, d1, d2 doc, settings model.Settings) {
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Kind != model.BlockInB || blocks[i-1].Kind != model.BlockInA {
			continue
		}
		a, b := i-1, i
		wordsA := lineWords(d1.lines, blocks[a].Offset, blocks[a].Length, settings)
		wordsB := lineWords(d2.lines, blocks[b].Offset, blocks[b].Length, settings)
		blockpair.Compare(blocks, a, b, wordsA, wordsB)
	}
}

func lineWords(lines [][]byte, offset, length int, settings model.Settings) [][]token.Run {
	out := make([][]token.Run, length)
	for i := 0; i < length; i++ {
		out[i] = token.Line(lines[offset+i], settings.IgnoreCase, settings.IgnoreSpaces)
	}
	return out
}

// applyLeadingLineWorkaround handles the case where the diff starts
// with a change and either document's compared section starts at its
// origin, a blank line is inserted at both documents' origins so the host
// can annotate what was previously line 0, and every block's Offset is
// shifted by one to match. It reports whether the shift happened, since
// walkBlocks needs it to locate Match blocks' implicit B-side offset.
func applyLeadingLineWorkaround(ed collab.Editor, d1, d2 doc, blocks []model.BlockDiff) bool {
	if blocks[0].Kind == model.BlockMatch {
		return false
	}
	if d1.input.Section.Offset != 0 && d2.input.Section.Offset != 0 {
		return false
	}

	for _, d := range [2]doc{d1, d2} {
		wasModified := ed.IsModified(d.input.ID)
		ed.WithWriteEnabled(d.input.ID, func() {
			ed.InsertTextAtOrigin(d.input.ID, "\n")
		})
		if !wasModified {
			ed.SetSavePoint(d.input.ID)
		}
	}
	for i := range blocks {
		blocks[i].Offset++
	}
	return true
}

// rebaseOffsets translates block offsets out of section-local coordinates:
// Match and IN_A offsets are in d1's line-index space, IN_B offsets are in
// d2's; each gets its own document's section origin added.
func rebaseOffsets(blocks []model.BlockDiff, origin1, origin2 int) {
	for i := range blocks {
		if blocks[i].Kind == model.BlockInB {
			blocks[i].Offset += origin2
		} else {
			blocks[i].Offset += origin1
		}
	}
}

// noLine is the AlignmentSide sentinel for "this document has no line at
// this row" (an IN_A or IN_B row has content on only one side).
const noLine = -1

// walkBlocks produces the alignment table and
// issues every marker/byte-range paint to ed. bOffset tracks the absolute
// d2-space line position as blocks are walked, since a MATCH block's
// Offset only ever records its d1-space position; IN_A and IN_B block
// offsets are already absolute in their own space after rebasing.
func walkBlocks(ed collab.Editor, blocks []model.BlockDiff, d1, d2 doc, shifted bool) []model.AlignmentPair {
	d1IsMain := d1.input.ID == model.Main

	bOffset := d2.input.Section.Offset
	if shifted {
		bOffset++
	}

	var pairs []model.AlignmentPair
	for _, b := range blocks {
		switch b.Kind {
		case model.BlockMatch:
			for i := 0; i < b.Length; i++ {
				aSide := model.AlignmentSide{Line: b.Offset + i}
				bSide := model.AlignmentSide{Line: bOffset + i}
				pairs = append(pairs, assemble(d1IsMain, aSide, bSide))
			}
			bOffset += b.Length
		case model.BlockInA:
			masks := lineMarkers(b, d1.input.PaintMask, localVariant(d1.input.PaintMask))
			paintBlock(ed, d1.input.ID, b, b.Offset, masks)
			for i := 0; i < b.Length; i++ {
				aSide := model.AlignmentSide{Line: b.Offset + i, DiffMask: masks[i]}
				pairs = append(pairs, assemble(d1IsMain, aSide, model.AlignmentSide{Line: noLine}))
			}
		case model.BlockInB:
			masks := lineMarkers(b, d2.input.PaintMask, localVariant(d2.input.PaintMask))
			paintBlock(ed, d2.input.ID, b, b.Offset, masks)
			for i := 0; i < b.Length; i++ {
				bSide := model.AlignmentSide{Line: b.Offset + i, DiffMask: masks[i]}
				pairs = append(pairs, assemble(d1IsMain, model.AlignmentSide{Line: noLine}, bSide))
			}
			bOffset = b.Offset + b.Length
		}
	}
	return pairs
}

func assemble(d1IsMain bool, aSide, bSide model.AlignmentSide) model.AlignmentPair {
	if d1IsMain {
		return model.AlignmentPair{Main: aSide, Sub: bSide}
	}
	return model.AlignmentPair{Main: bSide, Sub: aSide}
}

// lineMarkers computes the per-line marker for every line of an unmatched
// block: the block's own paint mask by default, overridden by a local-
// change or moved-run marker for lines covered by a recorded Match, and
// ORed with CHANGED for lines that also got a word-level diff from
// BlockPairComparer.
func lineMarkers(b model.BlockDiff, paintMask, localMask model.MarkerMask) []model.MarkerMask {
	masks := make([]model.MarkerMask, b.Length)
	for i := range masks {
		masks[i] = paintMask
	}
	for _, m := range b.Info.Matches {
		for i := 0; i < m.Section.Length; i++ {
			line := m.Section.Offset + i
			if m.IsMoved {
				masks[line] = movedLineMask(i, m.Section.Length)
			} else {
				masks[line] = localMask
			}
		}
	}
	for _, lc := range b.Info.ChangedLines {
		masks[lc.LineIndex] |= model.MarkerChanged
	}
	return masks
}

func movedLineMask(posInRun, runLength int) model.MarkerMask {
	switch {
	case runLength == 1:
		return model.MarkerMovedLine
	case posInRun == 0:
		return model.MarkerMovedBegin
	case posInRun == runLength-1:
		return model.MarkerMovedEnd
	default:
		return model.MarkerMovedMid
	}
}

func localVariant(paintMask model.MarkerMask) model.MarkerMask {
	if paintMask&model.MarkerAdded != 0 {
		return model.MarkerAddedLocal
	}
	return model.MarkerRemovedLocal
}

// paintBlock issues one PaintLineMarker per non-zero mask and one
// PaintByteRange per recorded word-level change, translating each change's
// line-local byte range into the document's absolute byte offsets.
func paintBlock(ed collab.Editor, docID model.DocID, b model.BlockDiff, baseLine int, masks []model.MarkerMask) {
	for i, mask := range masks {
		if mask != 0 {
			ed.PaintLineMarker(docID, baseLine+i, mask)
		}
	}
	for _, lc := range b.Info.ChangedLines {
		lineStart, _ := ed.LineRange(docID, baseLine+lc.LineIndex)
		for _, change := range lc.Changes {
			ed.PaintByteRange(docID, lineStart+change.Offset, change.Length)
		}
	}
}
