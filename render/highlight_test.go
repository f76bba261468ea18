package render

import (
	"strings"
	"testing"
)

func TestHighlightKeepsGoLineContent(t *testing.T) {
	out, err := Highlight([]string{`func main() {}`}, Lang("go"))
	if err != nil {
		t.Fatalf("Highlight returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if !strings.Contains(string(out[0]), "func") {
		t.Errorf("highlighted line lost content: %q", out[0])
	}
}

func TestHighlightEscapesHTML(t *testing.T) {
	out, err := Highlight([]string{`<script>`})
	if err != nil {
		t.Fatalf("Highlight returned error: %v", err)
	}
	if strings.Contains(string(out[0]), "<script>") {
		t.Errorf("Highlight did not escape HTML, got %q", out[0])
	}
}

func TestHighlightPreservesLineCount(t *testing.T) {
	out, err := Highlight([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Highlight returned error: %v", err)
	}
	if len(out) != 3 {
		t.Errorf("len(out) = %d, want 3", len(out))
	}
}
