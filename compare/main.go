// Command compare is the CLI front end for the diff engine: it loads two
// text files into the in-memory collab.Editor, runs engine.Run over them,
// and reports the result as terminal text, an HTML report, or a hash-only
// unique-lines listing.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:          "compare [command]",
		Short:        "Compare two text files line by line and word by word",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(uniqueCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
