package assistant

import (
	"fmt"
	"os"
	"strings"
)

const maxPromptEntries = 30

// systemPrompt builds the per-request context every backend prepends to
// the chat request: the working directory, its entries, and the command
// conventions the reply pipeline understands. Rebuilt on each call so a
// project switch is reflected immediately.
func systemPrompt() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "(unknown)"
	}
	names := "(unable to list files)"
	if entries, err := os.ReadDir(cwd); err == nil {
		list := make([]string, 0, len(entries))
		for _, e := range entries {
			if len(list) == maxPromptEntries {
				list = append(list, "…")
				break
			}
			name := e.Name()
			if e.IsDir() {
				name += "/"
			}
			list = append(list, name)
		}
		names = strings.Join(list, "\n")
	}
	return fmt.Sprintf(`You are a concise terminal assistant inside a menu tool.

CURRENT CONTEXT:
- Working directory: %s
- Entries here:
%s

RULES:
1. Suggest concrete shell commands for the user's request, one per line, prefixed with "$ ".
2. Read-only commands (ls, cat, grep, find, ...) run automatically and their output is shown to the user.
3. Commands that write or delete are only annotated, never run; say what they would do.
4. Keep answers short: commands first, at most one line of explanation after.`, cwd, names)
}
