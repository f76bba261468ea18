package main

import (
	"fmt"
	"os"
	"strings"
)

// loadLines reads path and splits it into lines without their terminators,
// the shape collab.NewMemEditor expects.
func loadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
