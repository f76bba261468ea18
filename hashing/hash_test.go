package hashing

import "testing"

func TestLineBlank(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		ignoreCase   bool
		ignoreSpaces bool
		wantBlank    bool
	}{
		{name: "empty", line: "", wantBlank: true},
		{name: "spaces only, ignored", line: "   \t", ignoreSpaces: true, wantBlank: true},
		{name: "spaces only, significant", line: "   \t", ignoreSpaces: false, wantBlank: false},
		{name: "content", line: "x", wantBlank: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Line([]byte(tt.line), tt.ignoreCase, tt.ignoreSpaces) == Seed
			if got != tt.wantBlank {
				t.Errorf("Line(%q) blank = %v, want %v", tt.line, got, tt.wantBlank)
			}
		})
	}
}

func TestLineIgnoreCase(t *testing.T) {
	a := Line([]byte("Hello"), true, false)
	b := Line([]byte("hello"), true, false)
	if a != b {
		t.Errorf("IgnoreCase should make hashes equal: %v != %v", a, b)
	}
	if Line([]byte("Hello"), false, false) == Line([]byte("hello"), false, false) {
		t.Errorf("without IgnoreCase hashes should differ")
	}
}

func TestLineIgnoreSpaces(t *testing.T) {
	a := Line([]byte("a b\tc"), false, true)
	b := Line([]byte("abc"), false, true)
	if a != b {
		t.Errorf("IgnoreSpaces should make hashes equal: %v != %v", a, b)
	}
}

func TestLineIndependentOfContext(t *testing.T) {
	// Idempotent hashing: hash(line) depends only on the line's own bytes.
	lines := [][]byte{[]byte("same"), []byte("other"), []byte("same")}
	hashes := Lines(lines, false, false)
	if hashes[0] != hashes[2] {
		t.Errorf("identical lines must hash identically regardless of position")
	}
	if hashes[0] == hashes[1] {
		t.Errorf("different lines should not collide in this test")
	}
}

func TestWordFreshSeedPerWord(t *testing.T) {
	w1 := Word([]byte("foo"), false)
	w2 := Line([]byte("foo"), false, false)
	if w1 != w2 {
		t.Errorf("Word and Line should agree when hashing the same bytes from the seed: %v != %v", w1, w2)
	}
}
