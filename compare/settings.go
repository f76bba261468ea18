package main

import (
	"github.com/spf13/cobra"

	"github.com/ndiff/compare/config"
	"github.com/ndiff/compare/model"
)

// settingsFlags binds the Settings-shaped cobra flags shared by the compare
// and watch commands, keeping track of whether each was actually set so
// config.Override only overrides what the user actually asked for on the
// command line, letting flags win over a config file and a config file win
// over built-in defaults.
type settingsFlags struct {
	configPath   string
	ignoreCase   bool
	ignoreSpaces bool
	detectMoves  bool
	oldFileView  string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a TOML settings file")
	cmd.Flags().BoolVar(&f.ignoreCase, "ignore-case", false, "ignore case when comparing lines")
	cmd.Flags().BoolVar(&f.ignoreSpaces, "ignore-spaces", false, "ignore whitespace when comparing lines")
	cmd.Flags().BoolVar(&f.detectMoves, "detect-moves", true, "detect moved blocks instead of treating them as plain add/remove")
	cmd.Flags().StringVar(&f.oldFileView, "old-file-view", "", `which document is the "old" one: "main" or "sub"`)
}

func (f *settingsFlags) resolve(cmd *cobra.Command) (model.Settings, error) {
	settings, err := config.Load(f.configPath)
	if err != nil {
		return model.Settings{}, err
	}

	var override config.Override
	if cmd.Flags().Changed("ignore-case") {
		override.IgnoreCase = &f.ignoreCase
	}
	if cmd.Flags().Changed("ignore-spaces") {
		override.IgnoreSpaces = &f.ignoreSpaces
	}
	if cmd.Flags().Changed("detect-moves") {
		override.DetectMoves = &f.detectMoves
	}
	if cmd.Flags().Changed("old-file-view") {
		override.OldFileView = &f.oldFileView
	}

	return override.Apply(settings)
}
