package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// recentLimit caps the recently-visited list.
const recentLimit = 10

// LoadRecent returns the recently-visited project paths, newest first.
// A missing file is an empty list.
func LoadRecent(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var recent []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			recent = append(recent, line)
		}
	}
	return recent
}

// TouchRecent moves the project path to the front of the list,
// deduplicating and capping it.
func TouchRecent(path, project string) error {
	recent := []string{project}
	for _, p := range LoadRecent(path) {
		if p != project {
			recent = append(recent, p)
		}
	}
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create state directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(recent, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("unable to write recent list: %w", err)
	}
	return nil
}
