// Package command extracts shell commands from assistant replies and
// decides which of them may run. Replies are scanned line by line for
// "$ "-prefixed commands, backtick spans, and bare lines that start
// with a known command. Each candidate is classified against the safe
// and confirm lists before anything executes.
package command

import (
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// Class buckets a command by what the runner may do with it.
type Class int

const (
	// Safe commands run automatically with captured output.
	Safe Class = iota
	// Confirm commands are announced but never run from chat.
	Confirm
	// Blocked commands are refused outright.
	Blocked
)

func (c Class) String() string {
	switch c {
	case Safe:
		return "safe"
	case Confirm:
		return "confirm"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Decision is the outcome of classifying one command line.
type Decision struct {
	Class  Class
	Reason string
	Argv   []string
}

var defaultSafe = []string{
	"ls", "cat", "grep", "find", "pwd", "echo", "which",
	"head", "tail", "tree", "wc", "du", "df",
}

var defaultConfirm = []string{
	"rm", "mv", "cp", "mkdir", "touch", "chmod",
	"pip", "npm", "brew", "git", "python3", "node",
}

// blockedPaths are prefixes no argument may mention, whatever the
// command. The check runs before the confirm list so "rm /etc/hosts"
// is refused rather than announced.
var blockedPaths = []string{
	"/System", "/Library", "/private", "/etc",
	"/usr", "/bin", "/sbin", "/Applications",
}

// Classifier applies the safety lists, optionally extended from
// configuration. The zero value is unusable; build one with
// NewClassifier.
type Classifier struct {
	safe    map[string]bool
	confirm map[string]bool
}

func NewClassifier(extraSafe, extraConfirm []string) *Classifier {
	c := &Classifier{
		safe:    make(map[string]bool, len(defaultSafe)+len(extraSafe)),
		confirm: make(map[string]bool, len(defaultConfirm)+len(extraConfirm)),
	}
	for _, name := range defaultSafe {
		c.safe[name] = true
	}
	for _, name := range defaultConfirm {
		c.confirm[name] = true
	}
	for _, name := range extraSafe {
		if name = strings.TrimSpace(name); name != "" {
			c.safe[name] = true
		}
	}
	for _, name := range extraConfirm {
		if name = strings.TrimSpace(name); name != "" {
			c.confirm[name] = true
		}
	}
	return c
}

// Classify parses one command line and buckets it. The blocked-path
// scan covers every argument and wins over list membership.
func (c *Classifier) Classify(line string) Decision {
	argv, err := shellwords.Parse(line)
	if err != nil {
		return Decision{Class: Blocked, Reason: "unparseable: " + err.Error()}
	}
	if len(argv) == 0 {
		return Decision{Class: Blocked, Reason: "empty command"}
	}
	for _, arg := range argv[1:] {
		for _, prefix := range blockedPaths {
			if strings.Contains(arg, prefix) {
				return Decision{Class: Blocked, Reason: "touches " + prefix, Argv: argv}
			}
		}
	}
	switch name := argv[0]; {
	case c.safe[name]:
		return Decision{Class: Safe, Argv: argv}
	case c.confirm[name]:
		return Decision{Class: Confirm, Reason: "confirmation required", Argv: argv}
	default:
		return Decision{Class: Blocked, Reason: "not on the allow list", Argv: argv}
	}
}

// Extract pulls command candidates out of a reply. Three shapes count:
// a "$ " prefix takes the rest of the line verbatim, the first backtick
// span on a line counts when it starts with a known command, and a bare
// line counts when its first word is a known command. A line with a
// backtick span yields at most that span.
func (c *Classifier) Extract(reply string) []string {
	var out []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "$ "); ok {
			if cmd := strings.TrimSpace(rest); cmd != "" {
				out = append(out, cmd)
			}
			continue
		}
		if span, ok := backtickSpan(line); ok {
			if c.knownFirstWord(span) {
				out = append(out, span)
			}
			continue
		}
		if c.knownFirstWord(line) {
			out = append(out, line)
		}
	}
	return out
}

func (c *Classifier) knownFirstWord(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return c.safe[fields[0]] || c.confirm[fields[0]]
}

func backtickSpan(line string) (string, bool) {
	start := strings.IndexByte(line, '`')
	if start < 0 {
		return "", false
	}
	rest := line[start+1:]
	end := strings.IndexByte(rest, '`')
	if end <= 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
