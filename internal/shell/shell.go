// Package shell bridges the menu back into the invoking shell. A
// process cannot change its parent's working directory, so selecting a
// project writes the target path to a marker file and exits with a
// reserved code; a wrapper function sourced from the shell rc watches
// for that code and performs the cd.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExitCD is the reserved exit code that tells the wrapper function to
// read the marker file and change directory.
const ExitCD = 42

// WriteMarker records the change-directory target for the wrapper.
func WriteMarker(path, dir string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create marker directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(dir+"\n"), 0o644); err != nil {
		return fmt.Errorf("unable to write cd marker: %w", err)
	}
	return nil
}

// ReadMarker returns the recorded target, or "" when no marker exists.
func ReadMarker(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// InitScript returns the wrapper function for zsh and bash. Users add
//
//	eval "$(modeterm shell-init)"
//
// to their rc file; the function forwards to the real binary, performs
// the deferred cd on the reserved exit code, and sources the managed
// alias file when present.
func InitScript(markerPath, aliasPath string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# modeterm shell integration\n")
	fmt.Fprintf(&b, "modeterm() {\n")
	fmt.Fprintf(&b, "    command modeterm \"$@\"\n")
	fmt.Fprintf(&b, "    local _mt_status=$?\n")
	fmt.Fprintf(&b, "    if [ \"$_mt_status\" -eq %d ] && [ -f %q ]; then\n", ExitCD, markerPath)
	fmt.Fprintf(&b, "        cd \"$(cat %q)\" || return\n", markerPath)
	fmt.Fprintf(&b, "        rm -f %q\n", markerPath)
	fmt.Fprintf(&b, "        return 0\n")
	fmt.Fprintf(&b, "    fi\n")
	fmt.Fprintf(&b, "    return \"$_mt_status\"\n")
	fmt.Fprintf(&b, "}\n")
	if aliasPath != "" {
		fmt.Fprintf(&b, "[ -f %q ] && . %q\n", aliasPath, aliasPath)
	}
	return b.String()
}
