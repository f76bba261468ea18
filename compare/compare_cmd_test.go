package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ndiff/compare/model"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCompareMatch(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "foo\nbar\n")
	b := writeFile(t, dir, "b.txt", "foo\nbar\n")

	flags := &settingsFlags{}
	cmd := newTestCmd(flags)

	result, pairs, _, err := runCompare(cmd, flags, a, b)
	if err != nil {
		t.Fatalf("runCompare returned error: %v", err)
	}
	if result != model.ResultMatch {
		t.Errorf("result = %v, want MATCH", result)
	}
	if len(pairs) != 0 {
		t.Errorf("pairs = %v, want none", pairs)
	}
}

func TestRunCompareMismatch(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "foo\nbar\n")
	b := writeFile(t, dir, "b.txt", "foo\nbaz\n")

	flags := &settingsFlags{}
	cmd := newTestCmd(flags)

	result, pairs, ed, err := runCompare(cmd, flags, a, b)
	if err != nil {
		t.Fatalf("runCompare returned error: %v", err)
	}
	if result != model.ResultMismatch {
		t.Errorf("result = %v, want MISMATCH", result)
	}
	if ed == nil || len(pairs) == 0 {
		t.Errorf("expected a non-empty alignment table")
	}
}
