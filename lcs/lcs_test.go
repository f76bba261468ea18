package lcs

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func hashStrings(s string) uint64 {
	var h uint64 = 0x84222325
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h += (h << 1) + (h << 4) + (h << 5) + (h << 7) + (h << 8) + (h << 40)
	}
	return h
}

func diffStrings(t *testing.T, a, b []string) []Span {
	t.Helper()
	got, err := Diff(a, b, hashStrings, Limits{})
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	return got
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []Span
	}{
		{
			name: "identical",
			a:    []string{"foo", "bar", "baz"},
			b:    []string{"foo", "bar", "baz"},
			want: []Span{{Match, 0, 3}},
		},
		{
			name: "empty",
			want: nil,
		},
		{
			name: "a-empty",
			b:    []string{"foo", "bar", "baz"},
			want: []Span{{InB, 0, 3}},
		},
		{
			name: "b-empty",
			a:    []string{"foo", "bar", "baz"},
			want: []Span{{InA, 0, 3}},
		},
		{
			name: "same-prefix",
			a:    []string{"foo", "bar"},
			b:    []string{"foo", "baz"},
			want: []Span{{Match, 0, 1}, {InA, 1, 1}, {InB, 1, 1}},
		},
		{
			name: "same-suffix",
			a:    []string{"foo", "bar"},
			b:    []string{"loo", "bar"},
			want: []Span{{InA, 0, 1}, {InB, 0, 1}, {Match, 1, 1}},
		},
		{
			name: "pure addition",
			a:    []string{"x", "y", "z"},
			b:    []string{"x", "y", "w", "z"},
			want: []Span{{Match, 0, 2}, {InB, 2, 1}, {Match, 2, 1}},
		},
		{
			name: "pure deletion",
			a:    []string{"x", "y", "z"},
			b:    []string{"x", "z"},
			want: []Span{{Match, 0, 1}, {InA, 1, 1}, {Match, 2, 1}},
		},
		{
			name: "duplication",
			a:    []string{"x"},
			b:    []string{"x", "x", "x"},
			want: []Span{{Match, 0, 1}, {InB, 1, 2}},
		},
		{
			name: "ABCABBA_to_CBABAC",
			a:    strings.Split("ABCABBA", ""),
			b:    strings.Split("CBABAC", ""),
			want: []Span{
				{InA, 0, 2},
				{Match, 2, 1},
				{InB, 1, 1},
				{Match, 3, 2},
				{InA, 5, 1},
				{Match, 6, 1},
				{InB, 5, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diffStrings(t, tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// reconstructA rebuilds a from the Match and InA spans of a diff result.
func reconstructA(a []string, spans []Span) []string {
	var out []string
	for _, s := range spans {
		if s.Kind == Match || s.Kind == InA {
			out = append(out, a[s.Offset:s.Offset+s.Length]...)
		}
	}
	return out
}

// reconstructB rebuilds b from the Match and InB spans of a diff result.
// Match offsets index a, so Match content is taken from a.
func reconstructB(a, b []string, spans []Span) []string {
	var out []string
	for _, s := range spans {
		switch s.Kind {
		case Match:
			out = append(out, a[s.Offset:s.Offset+s.Length]...)
		case InB:
			out = append(out, b[s.Offset:s.Offset+s.Length]...)
		}
	}
	return out
}

func TestDiffSpanPartition(t *testing.T) {
	cases := [][2][]string{
		{{"a", "b", "c", "d", "e"}, {"a", "d", "e", "b", "c"}},
		{strings.Split("ABCABBA", ""), strings.Split("CBABAC", "")},
		{{"hello world"}, {"hello brave world"}},
		{{}, {"x", "y"}},
		{{"x", "y"}, {}},
	}
	for _, c := range cases {
		a, b := c[0], c[1]
		spans := diffStrings(t, a, b)
		if got := reconstructA(a, spans); !equalStrings(got, a) {
			t.Errorf("A-side partition broken: got %v, want %v", got, a)
		}
		if got := reconstructB(a, b, spans); !equalStrings(got, b) {
			t.Errorf("B-side partition broken: got %v, want %v", got, b)
		}
	}
}

func TestDiffNoZeroLengthOrAdjacentSameKind(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e", "f", "g"}
	b := []string{"a", "x", "c", "y", "e", "z", "g"}
	spans := diffStrings(t, a, b)
	for i, s := range spans {
		if s.Length == 0 {
			t.Errorf("span %d has zero length", i)
		}
		if i > 0 && spans[i-1].Kind == s.Kind {
			t.Errorf("spans %d and %d share kind %v", i-1, i, s.Kind)
		}
	}
}

func TestDiffMatchMaximality(t *testing.T) {
	// The LCS of these two is 4 ("a","c","e","g"); no common subsequence is longer.
	a := []string{"a", "b", "c", "d", "e", "f", "g"}
	b := []string{"a", "x", "c", "y", "e", "z", "g"}
	spans := diffStrings(t, a, b)
	matched := 0
	for _, s := range spans {
		if s.Kind == Match {
			matched += s.Length
		}
	}
	if matched != 4 {
		t.Errorf("matched length = %d, want 4", matched)
	}
}

func TestDiffCancelled(t *testing.T) {
	a := strings.Split(strings.Repeat("a", 50), "")
	b := strings.Split(strings.Repeat("b", 50), "")
	calls := 0
	_, err := Diff(a, b, hashStrings, Limits{Cancel: func() bool {
		calls++
		return calls > 1
	}})
	if err != ErrCancelled {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}

func TestDiffResourceExhausted(t *testing.T) {
	a := strings.Split(strings.Repeat("a", 200), "")
	b := strings.Split(strings.Repeat("b", 200), "")
	_, err := Diff(a, b, hashStrings, Limits{MaxWork: 4})
	if !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("err = %v, want ErrResourceExhausted", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
