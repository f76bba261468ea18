package render

import (
	"strings"
	"testing"

	"github.com/ndiff/compare/collab"
	"github.com/ndiff/compare/model"
)

func TestTextRendersBothLinesOnMatch(t *testing.T) {
	ed := collab.NewMemEditor([]string{"foo"}, []string{"foo"})
	pairs := []model.AlignmentPair{
		{Main: model.AlignmentSide{Line: 0}, Sub: model.AlignmentSide{Line: 0}},
	}

	out := Text(ed, pairs, 80)
	if !strings.Contains(out, "foo") {
		t.Errorf("output missing line content: %q", out)
	}
}

func TestTextRendersEmptyColumnForUnmatchedSide(t *testing.T) {
	ed := collab.NewMemEditor([]string{"foo"}, []string{})
	ed.PaintLineMarker(model.Main, 0, model.MarkerRemoved)
	pairs := []model.AlignmentPair{
		{Main: model.AlignmentSide{Line: 0, DiffMask: model.MarkerRemoved}, Sub: model.AlignmentSide{Line: -1}},
	}

	out := Text(ed, pairs, 80)
	if !strings.Contains(out, "foo") {
		t.Errorf("output missing line content: %q", out)
	}
}

func TestStyleForPicksMovedOverAdded(t *testing.T) {
	s := styleFor(model.MarkerAdded | model.MarkerMovedLine)
	if s.GetForeground() != movedStyle.GetForeground() {
		t.Errorf("expected moved style to take precedence")
	}
}

func TestLineByteRangesIntersectsOnlyOwnLine(t *testing.T) {
	ed := collab.NewMemEditor([]string{"foo", "barbaz"}, nil)
	ed.PaintByteRange(model.Main, 4, 3)

	if got := lineByteRanges(ed, model.Main, 0); len(got) != 0 {
		t.Errorf("line 0 ranges = %v, want none", got)
	}
	got := lineByteRanges(ed, model.Main, 1)
	if len(got) != 1 || got[0].Offset != 0 || got[0].Length != 3 {
		t.Errorf("line 1 ranges = %v, want [{0 3}]", got)
	}
}
