package menu

import (
	"strings"
	"testing"
)

func TestLoadHelpGuideMenuListsTopics(t *testing.T) {
	opts, err := loadHelpGuideMenu(Env{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != len(helpTopics) {
		t.Fatalf("expected %d topics, got %d", len(helpTopics), len(opts))
	}
	for _, opt := range opts {
		if opt.Help == "" {
			t.Fatalf("expected summary for %q", opt.Value)
		}
	}
}

func TestHelpGuideAction(t *testing.T) {
	res, err := HelpGuideAction(Env{}, Option{Value: "keys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Output, "enter") {
		t.Fatalf("expected keybinding text, got:\n%s", res.Output)
	}
	if res.Notice != "Keyboard controls" {
		t.Fatalf("expected topic title, got %q", res.Notice)
	}

	if _, err := HelpGuideAction(Env{}, Option{Value: "nonsense"}); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
}

func TestSearchTopicsByTitle(t *testing.T) {
	topic, ok := searchTopics("keyboard")
	if !ok {
		t.Fatalf("expected a match")
	}
	if topic.ID != "keys" {
		t.Fatalf("expected keys topic, got %q", topic.ID)
	}
}

func TestSearchTopicsFallsBackToBody(t *testing.T) {
	topic, ok := searchTopics("ollama")
	if !ok {
		t.Fatalf("expected a match")
	}
	if topic.ID != "assistant" {
		t.Fatalf("expected assistant topic, got %q", topic.ID)
	}
}

func TestSearchTopicsNoMatch(t *testing.T) {
	if _, ok := searchTopics("zzzzzz"); ok {
		t.Fatalf("expected no match")
	}
}
