// Package move implements move detection: it augments a line-level block
// diff with Match metadata describing runs that recur elsewhere in the
// opposite document, distinguishing an actual relocation from mere
// duplication. Blocks are referenced by stable index into the block slice
// rather than by pointer, so a match can outlive any later reordering of
// that slice.
package move

import (
	"github.com/ndiff/compare/hashing"
	"github.com/ndiff/compare/model"
)

// matchRef is a pending reference to a participating block and the offset
// within it at which the run begins, recorded before any Match is committed.
type matchRef struct {
	block  int
	offset int
}

// scanState is the running best-match candidate for one IN_A anchor line,
// threaded by reference through findMatches and findBetterMatch. sources
// are alternate IN_A occurrences of the same run (besides the anchor's own
// block); targets are every IN_B occurrence tied for the longest run length.
type scanState struct {
	section model.Section
	sources []matchRef
	targets []matchRef
}

// Find runs move detection over blocks in place. hashesA and hashesB are
// the full line-hash sequences for document A and B respectively; blocks'
// offsets index into them.
func Find(blocks []model.BlockDiff, hashesA, hashesB []uint64) {
	n := len(blocks)
	for di1 := 0; di1 < n; di1++ {
		if blocks[di1].Kind != model.BlockInA {
			continue
		}

		for ei1 := 0; ei1 < blocks[di1].Length; ei1++ {
			if length, _ := blocks[di1].Info.MatchAt(ei1); length > 0 {
				ei1 += length - 1
				continue
			}

			if hashesA[blocks[di1].Offset+ei1] == hashing.Seed {
				continue
			}

			best := findMatches(blocks, hashesA, hashesB, di1, ei1)
			if best.section.Length == 0 {
				continue
			}

			bestBlock := di1
			resumeAt := ei1

			// Scan for an equal-or-better anchor within the same block first,
			// then in every later IN_A block, mirroring the original's two
			// findBetterMatch call sites.
			findBetterMatch(blocks, hashesA, hashesB, di1, &resumeAt, &bestBlock, &best)
			for di2 := di1 + 1; di2 < n; di2++ {
				if blocks[di2].Kind == model.BlockInA {
					findBetterMatch(blocks, hashesA, hashesB, di2, &resumeAt, &bestBlock, &best)
				}
			}

			isMoved := len(best.sources)+1 == len(best.targets) &&
				!(best.section.Length == 1 && len(best.targets) > 1)

			commit(blocks, bestBlock, best.section, isMoved)
			for _, src := range best.sources {
				commit(blocks, src.block, model.Section{Offset: src.offset, Length: best.section.Length}, isMoved)
			}
			for _, tgt := range best.targets {
				commit(blocks, tgt.block, model.Section{Offset: tgt.offset, Length: best.section.Length}, isMoved)
			}

			// If the committed run is anchored exactly where we started, skip
			// past it; otherwise ei1 itself is still unmatched and must be
			// re-examined on the next iteration (the loop's ++ei1 then lands
			// back on it after the -- below).
			if bestBlock == di1 && resumeAt == ei1 {
				ei1 = best.section.Offset + best.section.Length - 1
			} else {
				ei1--
			}
		}
	}
}

func commit(blocks []model.BlockDiff, block int, sec model.Section, isMoved bool) {
	blocks[block].Info.Matches = append(blocks[block].Info.Matches, model.Match{Section: sec, IsMoved: isMoved})
}

// findMatches scans every IN_B block for the longest run of lines, anchored
// at hashesA[blocks[a1].Offset+ei1], that also occurs in that block. Ties in
// run length are kept as additional targets rather than discarded.
func findMatches(blocks []model.BlockDiff, hashesA, hashesB []uint64, a1, ei1 int) scanState {
	diff1 := blocks[a1]

	var best scanState
	minMatchLen := 1

	for b2, diff2 := range blocks {
		if diff2.Kind != model.BlockInB {
			continue
		}

		for ei2 := 0; diff2.Length-ei2 >= minMatchLen; ei2++ {
			if hashesA[diff1.Offset+ei1] != hashesB[diff2.Offset+ei2] {
				continue
			}

			if length, _ := diff2.Info.MatchAt(ei2); length > 0 {
				ei2 += length - 1
				continue
			}

			start1, end1 := ei1-1, ei1+1
			start2 := ei2 - 1
			for start1 >= 0 && start2 >= 0 {
				if length, _ := diff2.Info.MatchAt(start2); length > 0 {
					break
				}
				if hashesA[diff1.Offset+start1] != hashesB[diff2.Offset+start2] {
					break
				}
				start1--
				start2--
			}

			end2 := ei2 + 1
			for end1 < diff1.Length && end2 < diff2.Length {
				if length, _ := diff2.Info.MatchAt(end2); length > 0 {
					break
				}
				if hashesA[diff1.Offset+end1] != hashesB[diff2.Offset+end2] {
					break
				}
				end1++
				end2++
			}

			start1++
			start2++
			end1--

			runLen := end1 - start1 + 1

			if best.section.Length > runLen {
				continue
			}

			if best.section.Length < runLen {
				best.section = model.Section{Offset: start1, Length: runLen}
				best.targets = nil
				minMatchLen = runLen
			}

			if best.section.Length == runLen {
				best.targets = append(best.targets, matchRef{block: b2, offset: start2})
				ei2 = start2 + runLen - 1
			}
		}
	}

	return best
}

// findBetterMatch looks inside block diffIndex for another occurrence of the
// anchor line carried in best, resuming (when diffIndex is the block best is
// currently anchored in) right after the current best run rather than
// rescanning it. This resumption index is the one piece of mutable state the
// caller must thread across every findBetterMatch call for a given anchor.
func findBetterMatch(blocks []model.BlockDiff, hashesA, hashesB []uint64, diffIndex int, ei *int, bestBlock *int, best *scanState) {
	diff := blocks[diffIndex]

	i := 0
	if diffIndex == *bestBlock {
		i = best.section.Offset + best.section.Length
	}

	for ; diff.Length-i >= best.section.Length; i++ {
		if hashesA[diff.Offset+i] != hashesA[blocks[*bestBlock].Offset+*ei] {
			continue
		}

		if length, _ := diff.Info.MatchAt(i); length > 0 {
			i += length - 1
			continue
		}

		candidate := findMatches(blocks, hashesA, hashesB, diffIndex, i)
		if candidate.section.Length == 0 {
			continue
		}

		switch {
		case best.section.Length < candidate.section.Length:
			*bestBlock = diffIndex
			*best = candidate
			*ei = i
			i = candidate.section.Offset + candidate.section.Length - 1

		case best.section.Length == candidate.section.Length:
			if sameContent(hashesA, blocks[*bestBlock], best.section, diff, candidate.section) {
				best.sources = append(best.sources, matchRef{block: diffIndex, offset: candidate.section.Offset})
				i = candidate.section.Offset + candidate.section.Length - 1
			}
		}
	}
}

func sameContent(hashesA []uint64, blockA model.BlockDiff, secA model.Section, blockB model.BlockDiff, secB model.Section) bool {
	for k := 0; k < secA.Length; k++ {
		if hashesA[blockA.Offset+secA.Offset+k] != hashesA[blockB.Offset+secB.Offset+k] {
			return false
		}
	}
	return true
}
