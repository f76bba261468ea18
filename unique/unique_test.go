package unique

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sorted(r Result) Result {
	sort.Ints(r.UniqueToA)
	sort.Ints(r.UniqueToB)
	return r
}

func TestFindMatch(t *testing.T) {
	got := sorted(Find([]uint64{1, 2, 3}, []uint64{3, 1, 2}, 0, false))
	if !got.Matched() {
		t.Errorf("Matched() = false, want true for %+v", got)
	}
}

func TestFindMismatch(t *testing.T) {
	got := sorted(Find([]uint64{1, 2, 3}, []uint64{2, 3, 4}, 0, false))
	want := Result{UniqueToA: []int{0}, UniqueToB: []int{2}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindDuplicateHashesAllReported(t *testing.T) {
	got := sorted(Find([]uint64{1, 1, 2}, []uint64{2}, 0, false))
	want := Result{UniqueToA: []int{0, 1}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindIgnoreBlanksExcludesBlankSeed(t *testing.T) {
	const blank = 0x84222325
	got := sorted(Find([]uint64{blank, 1}, []uint64{1}, blank, true))
	if !got.Matched() {
		t.Errorf("Matched() = false, want true (blank lines excluded): %+v", got)
	}
}

func TestFindBlanksCountWhenNotIgnored(t *testing.T) {
	const blank = 0x84222325
	got := sorted(Find([]uint64{blank, 1}, []uint64{1}, blank, false))
	want := Result{UniqueToA: []int{0}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
}
