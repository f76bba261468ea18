// Package lcs implements a generic longest-common-subsequence diff used for
// both line-hash sequences and per-line word sequences, comparing elements
// by hash equality rather than by value so callers can diff anything
// hashable without Diff itself needing to know its element type.
//
// Implementation note: the algorithm is Myers' O((N+M)D) diff. See
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/ for
// background; reading the three-part series linked there is recommended
// before touching computeGraph or backtrack.
package lcs

import (
	"errors"
	"fmt"
)

// Op identifies which side of a Span's boundary an element came from.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match Op = iota
	InA
	InB
)

// Span is one maximal run of a single Op. Offset is in A's index space for
// Match and InA, and in B's index space for InB.
type Span struct {
	Kind   Op
	Offset int
	Length int
}

// ErrCancelled is returned when Limits.Cancel reports cancellation between
// outer-loop iterations.
var ErrCancelled = errors.New("lcs: cancelled")

// ErrResourceExhausted is returned when the Myers graph would grow beyond
// Limits.MaxWork entries.
var ErrResourceExhausted = errors.New("lcs: resource exhausted")

// Limits bounds a Diff call's resource usage and lets the caller observe
// cancellation. The zero value means "unbounded, never cancelled".
type Limits struct {
	// MaxWork caps the number of (d, k) graph cells the algorithm may
	// allocate. 0 means unbounded.
	MaxWork int
	// Cancel, if non-nil, is polled once per outer (d) iteration. A true
	// result aborts the Diff call with ErrCancelled.
	Cancel func() bool
}

// Diff computes a span-level LCS-based diff of a and b, comparing elements
// by hash(element) rather than by value equality. Spans never
// have length 0 and consecutive spans never share a kind. MATCH spans
// maximize total matched length; at a replacement boundary the InA span
// always precedes the corresponding InB span.
func Diff[T any](a, b []T, hash func(T) uint64, limits Limits) ([]Span, error) {
	ah := make([]uint64, len(a))
	for i, v := range a {
		ah[i] = hash(v)
	}
	bh := make([]uint64, len(b))
	for i, v := range b {
		bh[i] = hash(v)
	}
	return diffHashes(ah, bh, limits)
}

// elemOp is one element-granularity edit produced by backtracking the Myers
// graph, before runs of the same kind are merged into Spans.
type elemOp struct {
	kind   Op
	offset int // index in A for Match/InA, index in B for InB
}

func diffHashes(a, b []uint64, limits Limits) ([]Span, error) {
	var prefix, suffix []elemOp

	if n := commonPrefixLen(a, b); n > 0 {
		prefix = make([]elemOp, n)
		for i := 0; i < n; i++ {
			prefix[i] = elemOp{Match, i}
		}
		a = a[n:]
		b = b[n:]
	}

	if n := commonSuffixLen(a, b); n > 0 {
		baseA, baseB := len(a)-n, len(b)-n
		suffix = make([]elemOp, n)
		for i := 0; i < n; i++ {
			// baseA is relative to the prefix-stripped a; shift back into the
			// original index space by the prefix length removed above.
			suffix[i] = elemOp{Match, len(prefix) + baseA + i}
		}
		a = a[:baseA]
		b = b[:baseB]
	}

	var core []elemOp
	switch {
	case len(a) == 0 && len(b) == 0:
		// nothing left to do
	case len(a) == 0:
		core = make([]elemOp, len(b))
		for i := range b {
			core[i] = elemOp{InB, i}
		}
	case len(b) == 0:
		core = make([]elemOp, len(a))
		for i := range a {
			core[i] = elemOp{InA, i}
		}
	default:
		var err error
		core, err = shortestEditSequence(a, b, limits)
		if err != nil {
			return nil, err
		}
	}

	// core's offsets are relative to the prefix-stripped a/b; shift them
	// back into the original index space (both InA/Match and InB offsets
	// use the same shift since the prefix was removed from both sides).
	for i := range core {
		core[i].offset += len(prefix)
	}

	all := make([]elemOp, 0, len(prefix)+len(core)+len(suffix))
	all = append(all, prefix...)
	all = append(all, core...)
	all = append(all, suffix...)

	return mergeRuns(all), nil
}

func mergeRuns(ops []elemOp) []Span {
	var spans []Span
	for i := 0; i < len(ops); {
		j := i + 1
		for j < len(ops) && ops[j].kind == ops[i].kind {
			j++
		}
		spans = append(spans, Span{Kind: ops[i].kind, Offset: ops[i].offset, Length: j - i})
		i = j
	}
	return spans
}

func commonPrefixLen(a, b []uint64) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func commonSuffixLen(a, b []uint64) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[len(a)-i-1] != b[len(b)-i-1] {
			return i
		}
	}
	return n
}

// shortestEditSequence runs Myers' algorithm over a, b (neither empty) and
// backtracks the resulting graph into an ordered list of elemOps.
func shortestEditSequence(a, b []uint64, limits Limits) ([]elemOp, error) {
	g, err := computeGraph(a, b, limits)
	if err != nil {
		return nil, err
	}
	return backtrack(g, a, b), nil
}

// graph stores the full Myers trace, indexed by (d, k), so that backtracking
// doesn't need to re-run the forward pass.
type graph struct {
	v        []int
	maxDepth int
}

func (g *graph) growTo(maxDepth int) {
	if maxDepth <= g.maxDepth {
		return
	}
	n := (maxDepth + 2) * (maxDepth + 1) / 2
	grown := make([]int, n)
	copy(grown, g.v)
	g.v = grown
	g.maxDepth = maxDepth
}

func (g *graph) get(d, k int) int { return g.v[index(d, k)] }
func (g *graph) set(d, k, v int)  { g.v[index(d, k)] = v }

func index(d, k int) int {
	i := (d + 1) * d / 2
	j := k
	if k < 0 {
		j = -k - 1
	}
	return i + j
}

func computeGraph(a, b []uint64, limits Limits) (*graph, error) {
	g := &graph{maxDepth: -1}
	dMax := len(a) + len(b)
	for d := 0; d <= dMax; d++ {
		if limits.Cancel != nil && limits.Cancel() {
			return nil, ErrCancelled
		}
		g.growTo(d)
		if limits.MaxWork > 0 && len(g.v) > limits.MaxWork {
			return nil, fmt.Errorf("%w: graph grew to %d cells (limit %d)", ErrResourceExhausted, len(g.v), limits.MaxWork)
		}
		for k := -d; k <= d; k += 2 {
			var s int
			switch {
			case d == 0:
				s = 0
			case k == -d || (k != d && g.get(d-1, k-1) < g.get(d-1, k+1)):
				s = g.get(d-1, k+1)
			default:
				s = g.get(d-1, k-1) + 1
			}
			t := s - k

			for s < len(a) && t < len(b) && a[s] == b[t] {
				s++
				t++
			}

			g.set(d, k, s)

			if s >= len(a) && t >= len(b) {
				return g, nil
			}
		}
	}
	panic("lcs: myers graph construction did not converge")
}

func backtrack(g *graph, a, b []uint64) []elemOp {
	var ops []elemOp
	s, t := len(a), len(b)

	for d := g.maxDepth; ; d-- {
		k := s - t

		var prevK int
		switch {
		case d == 0:
			prevK = 0
		case k == -d || (k != d && g.get(d-1, k-1) < g.get(d-1, k+1)):
			prevK = k + 1
		default:
			prevK = k - 1
		}

		prevS := 0
		if d > 0 {
			prevS = g.get(d-1, prevK)
		}
		prevT := prevS - prevK

		for prevS < s && prevT < t {
			s--
			t--
			ops = append(ops, elemOp{Match, s})
		}

		if d == 0 {
			break
		}

		if prevS == s {
			t--
			ops = append(ops, elemOp{InB, t})
		} else {
			s--
			ops = append(ops, elemOp{InA, s})
		}

		s, t = prevS, prevT
	}

	reverse(ops)
	return ops
}

func reverse(ops []elemOp) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}
