// Package hashing computes the rolling-accumulator hashes used to compare
// lines and words cheaply, without repeatedly re-scanning their bytes.
package hashing

// Seed is the fixed starting accumulator value for both line and word
// hashing. A line that hashes to Seed after filtering is "blank" and is
// excluded from move detection.
const Seed uint64 = 0x84222325

// Mix folds one byte into the accumulator h, using the same unsigned
// 64-bit wrapping mix as the original engine.
func Mix(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h += (h << 1) + (h << 4) + (h << 5) + (h << 7) + (h << 8) + (h << 40)
	return h
}

func foldCase(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }

// Line hashes one line's raw bytes per the IgnoreCase/IgnoreSpaces options.
// An empty line after filtering hashes to Seed.
func Line(line []byte, ignoreCase, ignoreSpaces bool) uint64 {
	h := Seed
	for _, b := range line {
		if ignoreSpaces && isSpaceOrTab(b) {
			continue
		}
		if ignoreCase {
			b = foldCase(b)
		}
		h = Mix(h, b)
	}
	return h
}

// Lines hashes every line in lines, applying the same options to each.
func Lines(lines [][]byte, ignoreCase, ignoreSpaces bool) []uint64 {
	hashes := make([]uint64, len(lines))
	for i, l := range lines {
		hashes[i] = Line(l, ignoreCase, ignoreSpaces)
	}
	return hashes
}

// Word hashes one word's raw bytes, seeded fresh per word.
func Word(word []byte, ignoreCase bool) uint64 {
	h := Seed
	for _, b := range word {
		if ignoreCase {
			b = foldCase(b)
		}
		h = Mix(h, b)
	}
	return h
}
