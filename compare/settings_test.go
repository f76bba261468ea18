package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ndiff/compare/model"
)

func newTestCmd(flags *settingsFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags.register(cmd)
	return cmd
}

func TestResolveDefaultsWithNoFlagsOrConfig(t *testing.T) {
	flags := &settingsFlags{}
	cmd := newTestCmd(flags)

	got, err := flags.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if got != model.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", got)
	}
}

func TestResolveFlagOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("ignore_case = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flags := &settingsFlags{}
	cmd := newTestCmd(flags)
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("ignore-case", "false"); err != nil {
		t.Fatal(err)
	}

	got, err := flags.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if got.IgnoreCase != false {
		t.Errorf("IgnoreCase = %v, want false (flag should win over config file)", got.IgnoreCase)
	}
}

func TestResolveConfigFileAppliesWhenFlagUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("ignore_case = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flags := &settingsFlags{}
	cmd := newTestCmd(flags)
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}

	got, err := flags.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if !got.IgnoreCase {
		t.Errorf("IgnoreCase = %v, want true from config file", got.IgnoreCase)
	}
}
