package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ndiff/compare/hashing"
	"github.com/ndiff/compare/unique"
)

var uniqueFlags = &settingsFlags{}

var uniqueCmd = &cobra.Command{
	Use:   "unique <a> <b>",
	Short: "List lines present in one file but not the other, by hash only (no word diff)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := uniqueFlags.resolve(cmd)
		if err != nil {
			return err
		}

		linesA, err := loadLines(args[0])
		if err != nil {
			return err
		}
		linesB, err := loadLines(args[1])
		if err != nil {
			return err
		}

		hashesA := hashing.Lines(toByteLines(linesA), settings.IgnoreCase, settings.IgnoreSpaces)
		hashesB := hashing.Lines(toByteLines(linesB), settings.IgnoreCase, settings.IgnoreSpaces)

		result := unique.Find(hashesA, hashesB, hashing.Seed, settings.IgnoreSpaces)
		if result.Matched() {
			fmt.Println("no unique lines")
			return nil
		}

		printUnique(args[0], linesA, result.UniqueToA)
		printUnique(args[1], linesB, result.UniqueToB)
		return nil
	},
}

func init() {
	uniqueFlags.register(uniqueCmd)
}

func printUnique(path string, lines []string, indices []int) {
	slices.Sort(indices)
	for _, i := range indices {
		fmt.Printf("%s:%d: %s\n", path, i+1, lines[i])
	}
}

func toByteLines(lines []string) [][]byte {
	out := make([][]byte, len(lines))
	for i, l := range lines {
		out[i] = []byte(l)
	}
	return out
}
