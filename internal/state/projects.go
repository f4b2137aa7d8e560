package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanProjects lists the visible directories under root, most recently
// modified first. The file count is a cheap activity signal shown next
// to the name.
func ScanProjects(root string) ([]Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("unable to read projects directory: %w", err)
	}
	projects := make([]Project, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(root, entry.Name())
		projects = append(projects, Project{
			Name:     entry.Name(),
			Path:     path,
			LastUsed: info.ModTime(),
			Files:    countVisibleFiles(path),
		})
	}
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].LastUsed.Equal(projects[j].LastUsed) {
			return projects[i].LastUsed.After(projects[j].LastUsed)
		}
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

func countVisibleFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			count++
		}
	}
	return count
}
