// Package unique implements the find-unique comparison mode: a pure
// hash-set-difference over two documents' lines, with no word-level
// diffing at all.
package unique

import "github.com/ndiff/compare/model"

// Result is the outcome of a Find call: which line indices in each document
// have no counterpart (by hash) in the other document.
type Result struct {
	UniqueToA []int
	UniqueToB []int
}

// Matched reports whether Find found no unique lines on either side.
func (r Result) Matched() bool { return len(r.UniqueToA) == 0 && len(r.UniqueToB) == 0 }

// Find compares hashesA and hashesB by value, ignoring line order. When
// ignoreBlanks is set (IgnoreSpaces in settings terms), lines hashing to the
// blank seed are excluded from both sides entirely rather than being
// considered potential uniques.
func Find(hashesA, hashesB []uint64, blankHash uint64, ignoreBlanks bool) Result {
	byHashA := indexByHash(hashesA, blankHash, ignoreBlanks)
	byHashB := indexByHash(hashesB, blankHash, ignoreBlanks)

	for h := range byHashA {
		if _, ok := byHashB[h]; ok {
			delete(byHashA, h)
			delete(byHashB, h)
		}
	}

	return Result{
		UniqueToA: flatten(byHashA),
		UniqueToB: flatten(byHashB),
	}
}

func indexByHash(hashes []uint64, blankHash uint64, ignoreBlanks bool) map[uint64][]int {
	m := make(map[uint64][]int, len(hashes))
	for i, h := range hashes {
		if ignoreBlanks && h == blankHash {
			continue
		}
		m[h] = append(m[h], i)
	}
	return m
}

func flatten(m map[uint64][]int) []int {
	var out []int
	for _, lines := range m {
		out = append(out, lines...)
	}
	return out
}

// ToResultCode maps a Result to the model-level compare outcome.
func ToResultCode(r Result) model.Result {
	if r.Matched() {
		return model.ResultMatch
	}
	return model.ResultMismatch
}
