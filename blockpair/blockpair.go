// Package blockpair pairs an adjacent IN_A/IN_B block pair together as
// match partners and finds the best line-to-line mapping between them by
// word-level similarity, emitting a word-level diff for every mapped pair
// whose content actually differs.
package blockpair

import (
	"sort"

	"github.com/ndiff/compare/lcs"
	"github.com/ndiff/compare/model"
	"github.com/ndiff/compare/token"
)

// candidate is one (line1, line2) pair scoring at least 50% convergence,
// before the mapping search picks a consistent subset of them.
type candidate struct {
	convergence int
	line1       int
	line2       int
}

// mapping is what one greedy walk records for a given line1.
type mapping struct {
	convergence int
	line2       int
}

// pair is a mapping entry that survived the ascending-line2 monotone filter,
// in the order it should be emitted.
type pair struct {
	line1, line2, convergence int
}

// Compare wires blocks[a] and blocks[b] as match partners and, if a mapping
// scoring above zero is found, appends ChangedLine entries to each block's
// Info for every mapped line pair whose word-level diff is not a single
// MATCH span. wordsA/wordsB are the per-line word vectors for blocks[a]'s and
// blocks[b]'s own line ranges, local-indexed from each block's first line.
func Compare(blocks []model.BlockDiff, a, b int, wordsA, wordsB [][]token.Run) {
	blocks[a].Info.MatchPartner = b
	blocks[b].Info.MatchPartner = a

	linesCount1, linesCount2 := len(wordsA), len(wordsB)

	var candidates []candidate

	for line1 := 0; line1 < linesCount1; line1++ {
		if len(wordsA[line1]) == 0 {
			continue
		}
		if length, isMoved := blocks[a].Info.MatchAt(line1); length > 0 && isMoved {
			line1 += length - 1
			continue
		}

		line1Len := byteLength(wordsA[line1])

		for line2 := 0; line2 < linesCount2; line2++ {
			if len(wordsB[line2]) == 0 {
				continue
			}
			if length, isMoved := blocks[b].Info.MatchAt(line2); length > 0 && isMoved {
				line2 += length - 1
				continue
			}

			if score, ok := convergence(wordsA[line1], wordsB[line2], line1Len); ok {
				candidates = append(candidates, candidate{score, line1, line2})
			}
		}
	}

	if len(candidates) == 0 {
		return
	}

	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.convergence != cj.convergence {
			return ci.convergence > cj.convergence
		}
		if ci.line1 != cj.line1 {
			return ci.line1 < cj.line1
		}
		return ci.line2 < cj.line2
	})

	best := bestMapping(candidates, linesCount1, linesCount2)
	if len(best) == 0 {
		return
	}

	emit(blocks, a, b, wordsA, wordsB, monotoneFiltered(best))
}

// convergence scores how similar two lines' word vectors are: the better of
// a word-count ratio and a byte-count ratio, both measured against the
// longer side. It reports ok=false when the length gate excludes the pair or
// the score falls under the 50% threshold.
func convergence(wordsA, wordsB []token.Run, byteLenA int) (score int, ok bool) {
	longer, shorter := wordsA, wordsB
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	if len(longer) > 2*len(shorter) {
		return 0, false
	}

	spans, _ := lcs.Diff(longer, shorter, wordHash, lcs.Limits{})

	byteLenB := byteLength(wordsB)
	longerByteLen := byteLenA
	if byteLenB > longerByteLen {
		longerByteLen = byteLenB
	}

	wordConv, byteConv := 0, 0
	for _, s := range spans {
		if s.Kind != lcs.Match {
			continue
		}
		wordConv += s.Length
		for i := 0; i < s.Length; i++ {
			byteConv += longer[s.Offset+i].ByteLength
		}
	}

	wordScore := wordConv * 100 / len(longer)
	byteScore := 0
	if longerByteLen > 0 {
		byteScore = byteConv * 100 / longerByteLen
	}
	if wordScore < byteScore {
		wordScore = byteScore
	}
	if wordScore < 50 {
		return 0, false
	}
	return wordScore, true
}

func byteLength(words []token.Run) int {
	n := 0
	for _, w := range words {
		n += w.ByteLength
	}
	return n
}

func wordHash(w token.Run) uint64 { return w.Hash }

// bestMapping tries every starting position in the sorted candidate list,
// greedily accepting ties under an each-side-used-once constraint, and keeps
// whichever resulting mapping scores highest once filtered to a strictly
// line2-ascending subset.
func bestMapping(candidates []candidate, linesCount1, linesCount2 int) map[int]mapping {
	var best map[int]mapping
	bestScore := 0

	for start := range candidates {
		mappings := make(map[int]mapping)
		used1 := make([]bool, linesCount1)
		used2 := make([]bool, linesCount2)
		count1, count2 := 0, 0

		for i := start; i < len(candidates); i++ {
			c := candidates[i]
			if used1[c.line1] || used2[c.line2] {
				continue
			}

			mappings[c.line1] = mapping{convergence: c.convergence, line2: c.line2}
			count1++
			count2++
			if count1 == linesCount1 || count2 == linesCount2 {
				break
			}
			used1[c.line1] = true
			used2[c.line2] = true
		}

		score := 0
		for _, p := range monotoneFiltered(mappings) {
			score += p.convergence
		}

		if score > bestScore {
			bestScore = score
			best = mappings
		}
	}

	return best
}

// monotoneFiltered walks mappings in ascending line1 order and keeps only
// entries whose line2 strictly exceeds every previously kept entry's line2 —
// lines1 are already ascending by construction, so this is the same
// constraint needed for line2 to also read ascending.
func monotoneFiltered(mappings map[int]mapping) []pair {
	line1s := make([]int, 0, len(mappings))
	for line1 := range mappings {
		line1s = append(line1s, line1)
	}
	sort.Ints(line1s)

	var out []pair
	lastLine2 := -1
	for _, line1 := range line1s {
		m := mappings[line1]
		if m.line2 > lastLine2 {
			out = append(out, pair{line1: line1, line2: m.line2, convergence: m.convergence})
			lastLine2 = m.line2
		}
	}
	return out
}

// emit runs a word-level diff for each accepted pair and records the
// resulting byte-range changes on both sides, skipping pairs whose lines are
// in fact identical at the word level.
func emit(blocks []model.BlockDiff, a, b int, wordsA, wordsB [][]token.Run, pairs []pair) {
	for _, p := range pairs {
		line1, line2 := p.line1, p.line2
		blockIdx1, blockIdx2 := a, b
		w1, w2 := wordsA[line1], wordsB[line2]

		if len(w1) < len(w2) {
			blockIdx1, blockIdx2 = b, a
			w1, w2 = w2, w1
			line1, line2 = line2, line1
		}

		spans, _ := lcs.Diff(w1, w2, wordHash, lcs.Limits{})
		if len(spans) == 1 && spans[0].Kind == lcs.Match {
			continue
		}

		idx1 := appendChangedLine(&blocks[blockIdx1].Info, line1)
		idx2 := appendChangedLine(&blocks[blockIdx2].Info, line2)

		for _, s := range spans {
			switch s.Kind {
			case lcs.InA:
				info := &blocks[blockIdx1].Info
				info.ChangedLines[idx1].Changes = append(info.ChangedLines[idx1].Changes, wordSpanByteRange(w1, s))
			case lcs.InB:
				info := &blocks[blockIdx2].Info
				info.ChangedLines[idx2].Changes = append(info.ChangedLines[idx2].Changes, wordSpanByteRange(w2, s))
			}
		}
	}
}

func appendChangedLine(info *model.BlockInfo, line int) int {
	info.ChangedLines = append(info.ChangedLines, model.LineChange{LineIndex: line})
	return len(info.ChangedLines) - 1
}

// wordSpanByteRange converts a run of words into the byte range they span
// within their line.
func wordSpanByteRange(words []token.Run, s lcs.Span) model.Section {
	first := words[s.Offset]
	last := words[s.Offset+s.Length-1]
	return model.Section{
		Offset: first.ByteOffset,
		Length: last.ByteOffset + last.ByteLength - first.ByteOffset,
	}
}
