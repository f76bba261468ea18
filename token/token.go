// Package token splits a line into words: maximal runs of bytes sharing one
// of three classes. Classification is ASCII-only by design rather than tied
// to any platform locale.
package token

import "github.com/ndiff/compare/hashing"

// ClassOf returns the byte class used by the tokenizer.
func ClassOf(b byte) Class {
	switch {
	case b == ' ' || b == '\t':
		return Space
	case isAlnum(b):
		return Alnum
	default:
		return Other
	}
}

// Class mirrors model.WordClass; it's redeclared here so this package
// doesn't need to import model just to classify bytes. Line returns Runs
// carrying a Class, not model.Word values.
type Class int

const (
	Space Class = iota
	Alnum
	Other
)

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_'
}

// Run is one maximal same-class run of bytes within a line.
type Run struct {
	Class      Class
	ByteOffset int
	ByteLength int
	Hash       uint64
}

// Line splits one line's raw bytes into word runs. If ignoreSpaces, Space
// runs are dropped entirely rather than being emitted. A line with no
// emitted words returns a nil/empty slice.
func Line(line []byte, ignoreCase, ignoreSpaces bool) []Run {
	if len(line) == 0 {
		return nil
	}

	var runs []Run
	start := 0
	class := ClassOf(line[start])
	for i := 1; i <= len(line); i++ {
		if i < len(line) && ClassOf(line[i]) == class {
			continue
		}
		if !(ignoreSpaces && class == Space) {
			runs = append(runs, Run{
				Class:      class,
				ByteOffset: start,
				ByteLength: i - start,
				Hash:       hashing.Word(line[start:i], ignoreCase),
			})
		}
		if i < len(line) {
			start = i
			class = ClassOf(line[i])
		}
	}
	return runs
}
