package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const aliasHeader = "# managed by modeterm; edit through the aliases menu"

// LoadAliases parses the managed alias file. A missing file is an
// empty list, not an error.
func LoadAliases(path string) ([]Alias, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read alias file: %w", err)
	}
	var aliases []Alias
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, "alias ")
		if !ok {
			continue
		}
		name, value, ok := strings.Cut(rest, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		aliases = append(aliases, Alias{Name: name, Command: unquote(strings.TrimSpace(value))})
	}
	return aliases, nil
}

// SaveAliases rewrites the managed alias file with the given list.
func SaveAliases(path string, aliases []Alias) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create alias directory: %w", err)
	}
	var b strings.Builder
	b.WriteString(aliasHeader)
	b.WriteByte('\n')
	for _, a := range aliases {
		fmt.Fprintf(&b, "alias %s='%s'\n", a.Name, a.Command)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("unable to write alias file: %w", err)
	}
	return nil
}

// PutAlias adds the alias, replacing any existing one with the same
// name.
func PutAlias(path string, alias Alias) error {
	aliases, err := LoadAliases(path)
	if err != nil {
		return err
	}
	replaced := false
	for i := range aliases {
		if aliases[i].Name == alias.Name {
			aliases[i] = alias
			replaced = true
		}
	}
	if !replaced {
		aliases = append(aliases, alias)
	}
	return SaveAliases(path, aliases)
}

// RemoveAlias deletes the named alias. The bool reports whether it was
// present.
func RemoveAlias(path, name string) (bool, error) {
	aliases, err := LoadAliases(path)
	if err != nil {
		return false, err
	}
	kept := aliases[:0]
	found := false
	for _, a := range aliases {
		if a.Name == name {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return false, nil
	}
	return true, SaveAliases(path, kept)
}

// ValidAliasName accepts letters, digits, hyphens and underscores.
func ValidAliasName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// ValidAliasCommand rejects commands the single-quoted alias line
// cannot carry.
func ValidAliasCommand(command string) bool {
	return command != "" && !strings.ContainsAny(command, "'\n")
}

func unquote(value string) string {
	if len(value) >= 2 {
		first := value[0]
		if (first == '\'' || first == '"') && value[len(value)-1] == first {
			return value[1 : len(value)-1]
		}
	}
	return value
}
