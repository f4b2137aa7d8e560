package menu

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// helpTopic is one page of the built-in guide.
type helpTopic struct {
	ID    string
	Title string
	Body  string
}

var helpTopics = []helpTopic{
	{
		ID:    "quick-start",
		Title: "Quick start",
		Body: `Getting around:

  1. Move with the arrow keys or j/k.
  2. Press enter to select.
  3. Press b to go back, q or ctrl-c to quit.
  4. Press tab to talk to the assistant from any menu.

First steps:

  - Switch project jumps your shell to another checkout.
  - Dev tools shows listeners, environment, and local databases.
  - Aliases manages a shell alias file sourced by the wrapper.

Run "modeterm shell-init" and eval it from your shell rc so the
project switcher can change your shell's directory.`,
	},
	{
		ID:    "keys",
		Title: "Keyboard controls",
		Body: `Menus:

  up/down or j/k   move the cursor
  enter            select the highlighted entry
  b                back to the previous menu
  h                help
  q, ctrl-c        quit
  tab              open the assistant chat

Chat:

  type and press enter to send
  backspace        edit the draft
  alt-m            view the conversation
  tab or ctrl-c    leave chat, back to the menu`,
	},
	{
		ID:    "assistant",
		Title: "Assistant and commands",
		Body: `The chat panel talks to the configured provider (ollama by
default; openai and anthropic need an API key).

Replies may carry shell commands. Lines starting with "$ ",
backtick spans, and bare command lines are picked up:

  - read-only commands (ls, cat, grep, df, ...) run
    automatically and their output is quoted back,
  - destructive commands (rm, mv, git, ...) are only announced
    with "Would execute",
  - anything touching system paths is blocked.`,
	},
	{
		ID:    "configuration",
		Title: "Configuration",
		Body: `Settings load from ~/.modeterm/config.yaml and the
environment; environment wins. Useful keys:

  assistant.provider     ollama, openai, anthropic, off
  assistant.model        provider-specific model name
  assistant.base_url     override the API endpoint
  paths.projects_dir     where the project switcher looks
  logging.level          info or debug
  ui.accent              ANSI colour for highlights

MODETERM_PROVIDER, MODETERM_MODEL, MODETERM_API_KEY and friends
override the file. Flags override both.`,
	},
	{
		ID:    "troubleshooting",
		Title: "Troubleshooting",
		Body: `Assistant unavailable: start ollama ("ollama serve") or set
assistant.provider to openai/anthropic with an API key. The
health check hits {base_url}/api/tags.

Directory does not change after switching projects: the shell
wrapper is not installed; eval "$(modeterm shell-init)" in your
shell rc.

Garbled screen: the menu needs a real terminal; when stdin is a
pipe it falls back to line input. Logs live under
~/.modeterm/logs/.`,
	},
}

// KeyHelp returns the keyboard reference shown by the in-menu help
// overlay.
func KeyHelp() (title, body string) {
	for _, t := range helpTopics {
		if t.ID == "keys" {
			return t.Title, t.Body
		}
	}
	return "", ""
}

func loadHelpMenu(Env) ([]Option, error) {
	return []Option{
		{Label: "Guide", Value: "guide", Help: "Built-in help pages"},
		{Label: "Search help", Value: "search", Help: "Find a topic by keyword"},
	}, nil
}

func loadHelpGuideMenu(Env) ([]Option, error) {
	opts := make([]Option, 0, len(helpTopics))
	for _, t := range helpTopics {
		opts = append(opts, Option{Label: t.Title, Value: t.ID, Help: firstLine(t.Body)})
	}
	return opts, nil
}

// HelpGuideAction shows the selected topic.
func HelpGuideAction(_ Env, opt Option) (Result, error) {
	for _, t := range helpTopics {
		if t.ID == opt.Value {
			return Result{Notice: t.Title, Output: t.Body}, nil
		}
	}
	return Result{}, errors.New("unknown help topic")
}

// HelpSearchAction prompts for a query and shows the best-matching
// topic.
func HelpSearchAction(_ Env, _ Option) (Result, error) {
	var query string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search help").
				Description("Keyword or phrase").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter a keyword")
					}
					return nil
				}).
				Value(&query),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, nil
		}
		return Result{}, err
	}

	if t, ok := searchTopics(strings.TrimSpace(query)); ok {
		return Result{Notice: t.Title, Output: t.Body}, nil
	}
	return Result{Notice: "No help topic matches " + strings.TrimSpace(query)}, nil
}

// searchTopics ranks titles first and falls back to a substring scan
// of the bodies.
func searchTopics(query string) (helpTopic, bool) {
	titles := make([]string, len(helpTopics))
	for i, t := range helpTopics {
		titles[i] = t.Title
	}
	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	if len(ranks) > 0 {
		best := ranks[0]
		for _, rank := range ranks[1:] {
			if rank.Distance < best.Distance {
				best = rank
			}
		}
		return helpTopics[best.OriginalIndex], true
	}
	lower := strings.ToLower(query)
	for _, t := range helpTopics {
		if strings.Contains(strings.ToLower(t.Body), lower) {
			return t, true
		}
	}
	return helpTopic{}, false
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSuffix(strings.TrimSpace(line), ":")
}
