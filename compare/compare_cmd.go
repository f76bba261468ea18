package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndiff/compare/collab"
	"github.com/ndiff/compare/engine"
	"github.com/ndiff/compare/model"
	"github.com/ndiff/compare/render"
)

var compareFlags = &settingsFlags{}

var (
	htmlOutput string
	textWidth  int
)

var compareCmd = &cobra.Command{
	Use:   "compare <main> <sub>",
	Short: "Compare two files and print their differences",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, pairs, ed, err := runCompare(cmd, compareFlags, args[0], args[1])
		if err != nil {
			return err
		}

		if htmlOutput != "" {
			return writeHTMLReport(htmlOutput, ed, result, pairs, args[0], args[1])
		}

		fmt.Println(render.Text(ed, pairs, textWidth))
		if result == model.ResultMatch {
			fmt.Println("files match")
		}
		return nil
	},
}

func init() {
	compareFlags.register(compareCmd)
	compareCmd.Flags().StringVar(&htmlOutput, "html", "", "write an HTML report to this path instead of printing text")
	compareCmd.Flags().IntVar(&textWidth, "width", 160, "terminal width for the side-by-side text view")
}

// runCompare loads mainPath and subPath, resolves settings, and runs the
// engine over them. It returns the editor so callers can render the result
// in whichever format they need.
func runCompare(cmd *cobra.Command, flags *settingsFlags, mainPath, subPath string) (model.Result, []model.AlignmentPair, *collab.MemEditor, error) {
	settings, err := flags.resolve(cmd)
	if err != nil {
		return 0, nil, nil, err
	}

	mainLines, err := loadLines(mainPath)
	if err != nil {
		return 0, nil, nil, err
	}
	subLines, err := loadLines(subPath)
	if err != nil {
		return 0, nil, nil, err
	}

	ed := collab.NewMemEditor(mainLines, subLines)
	main := model.DocInput{ID: model.Main, PaintMask: model.MarkerRemoved}
	sub := model.DocInput{ID: model.Sub, PaintMask: model.MarkerAdded}

	result, pairs, err := engine.Run(ed, collab.NoopProgress{}, main, sub, settings)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("comparing %s and %s: %w", mainPath, subPath, err)
	}
	return result, pairs, ed, nil
}

func writeHTMLReport(path string, ed *collab.MemEditor, result model.Result, pairs []model.AlignmentPair, mainPath, subPath string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return render.HTMLReport(f, ed, result, pairs, render.ReportOptions{
		Title:     fmt.Sprintf("%s vs %s", mainPath, subPath),
		MainLabel: mainPath,
		SubLabel:  subPath,
	})
}
