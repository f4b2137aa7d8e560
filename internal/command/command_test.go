package command

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractFindsCommandShapes(t *testing.T) {
	c := NewClassifier(nil, nil)
	cases := []struct {
		name  string
		reply string
		want  []string
	}{
		{"dollar prefix", "$ ls -la", []string{"ls -la"}},
		{"dollar prefix keeps arguments", "Run this:\n$ grep -r main .", []string{"grep -r main ."}},
		{"empty dollar line", "$ ", nil},
		{"known backtick span", "Run `ls -la` to see files", []string{"ls -la"}},
		{"unknown backtick span", "Try `nmap localhost` maybe", nil},
		{"backtick span consumes the line", "pwd is `pwd`", []string{"pwd"}},
		{"bare known command", "ls -la", []string{"ls -la"}},
		{"bare confirm command", "git status", []string{"git status"}},
		{"prose only", "The files live under src.", nil},
		{"blank lines skipped", "\n\n  \n", nil},
		{
			"mixed reply",
			"Here you go:\n$ pwd\nThen run `cat notes.txt` and maybe\nls docs",
			[]string{"pwd", "cat notes.txt", "ls docs"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Extract(tc.reply)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestClassifyBucketsCommands(t *testing.T) {
	c := NewClassifier(nil, nil)
	cases := []struct {
		name string
		line string
		want Class
	}{
		{"safe command", "ls -la", Safe},
		{"confirm command", "rm -rf build", Confirm},
		{"unknown command", "nmap localhost", Blocked},
		{"protected path", "cat /etc/passwd", Blocked},
		{"protected path beats confirm list", "rm /System/cache", Blocked},
		{"protected path inside argument", "grep root /private/var/db", Blocked},
		{"unterminated quote", `echo "oops`, Blocked},
		{"empty line", "", Blocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := c.Classify(tc.line)
			if d.Class != tc.want {
				t.Fatalf("expected %v, got %v (reason %q)", tc.want, d.Class, d.Reason)
			}
		})
	}
}

func TestClassifyKeepsArgv(t *testing.T) {
	c := NewClassifier(nil, nil)
	d := c.Classify(`grep "two words" notes.txt`)
	want := []string{"grep", "two words", "notes.txt"}
	if !reflect.DeepEqual(d.Argv, want) {
		t.Fatalf("expected argv %v, got %v", want, d.Argv)
	}
}

func TestClassifierHonorsExtraLists(t *testing.T) {
	c := NewClassifier([]string{"docker", " "}, []string{"kubectl"})
	if d := c.Classify("docker ps"); d.Class != Safe {
		t.Fatalf("expected extra safe command to classify safe, got %v", d.Class)
	}
	if d := c.Classify("kubectl get pods"); d.Class != Confirm {
		t.Fatalf("expected extra confirm command to classify confirm, got %v", d.Class)
	}
}

func TestClassReasonMentionsBlockedPath(t *testing.T) {
	c := NewClassifier(nil, nil)
	d := c.Classify("cat /etc/passwd")
	if !strings.Contains(d.Reason, "/etc") {
		t.Fatalf("expected reason to name the protected path, got %q", d.Reason)
	}
}

func TestClassString(t *testing.T) {
	if got := Safe.String(); got != "safe" {
		t.Fatalf("expected safe, got %q", got)
	}
	if got := Confirm.String(); got != "confirm" {
		t.Fatalf("expected confirm, got %q", got)
	}
	if got := Blocked.String(); got != "blocked" {
		t.Fatalf("expected blocked, got %q", got)
	}
}
